package site

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/refman/internal/logfields"
)

// stageWriteReport persists the build report into the output directory. A
// failed persist never fails the build; the in-memory report still reaches
// the caller.
func stageWriteReport(_ context.Context, bs *BuildState) error {
	if err := bs.Report.Persist(bs.Builder.outDir); err != nil {
		return NewWarnStageError(StageWriteReport,
			fmt.Errorf("persist build report: %w", err))
	}
	slog.Debug("Build report written", logfields.Dir(bs.Builder.outDir))
	return nil
}
