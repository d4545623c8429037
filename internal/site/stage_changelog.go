package site

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/refman/internal/fsops"
	"git.home.luguber.info/inful/refman/internal/logfields"
)

// stageChangelog copies the toolkit changelog from the repository root into
// the manual sources so it renders like any other page. The manual must not
// ship without it, hence a missing changelog is fatal.
func stageChangelog(_ context.Context, bs *BuildState) error {
	cfg := bs.Builder.cfg

	src := cfg.ChangelogPath()
	dst := filepath.Join(cfg.SourceDir(), "changelog.md")
	if err := fsops.CopyFile(src, dst); err != nil {
		return NewFatalStageError(StageChangelog,
			fmt.Errorf("%w: stage %s: %w", ErrChangelog, src, err))
	}
	slog.Debug("Changelog staged", logfields.Source(src), logfields.Dest(dst))
	return nil
}
