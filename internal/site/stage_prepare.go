package site

import (
	"context"
	"fmt"
	"os"

	"git.home.luguber.info/inful/refman/internal/fsops"
)

// stagePrepareOutput verifies the manual sources exist and creates the output
// directory. Nothing is deleted here; staging stages replace their own
// subtrees so unrelated output files survive rebuilds.
func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	cfg := bs.Builder.cfg

	if !fsops.IsDir(cfg.SourceDir()) {
		return NewFatalStageError(StagePrepareOutput,
			fmt.Errorf("%w: manual source directory not found: %s", ErrPrepare, cfg.SourceDir()))
	}
	if err := os.MkdirAll(bs.Builder.outDir, 0o755); err != nil {
		return NewFatalStageError(StagePrepareOutput,
			fmt.Errorf("%w: create output directory: %w", ErrPrepare, err))
	}
	return nil
}
