package site

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/refman/internal/fsops"
	"git.home.luguber.info/inful/refman/internal/logfields"
)

// stageAPIDocs makes sure the generated API reference is present in the
// manual sources and stages it into the output tree.
//
// A marker file decides whether the JavaScript toolchain runs at all: when it
// exists the docs are considered built and no external command is invoked.
// The copy into the output directory happens on every build, replacing any
// earlier tree wholesale, and the fixed landing page is overlaid as
// api/index.html afterwards.
func stageAPIDocs(ctx context.Context, bs *BuildState) error {
	b := bs.Builder
	cfg := b.cfg

	marker := cfg.APIMarkerPath()
	if fsops.Exists(marker) {
		slog.Info("API docs already built, skipping toolchain", logfields.Marker(marker))
	} else {
		bs.Report.APIDocsRebuilt = true
		t0 := time.Now()
		err := b.yarn.Bootstrap(ctx, cfg.RootDir(), cfg.API.Script)
		b.recorder.ObserveToolDuration("yarn", time.Since(t0), err == nil)
		if err != nil {
			return classifyToolError(StageAPIDocs, ErrAPIBuild, err)
		}
	}

	outAPI := filepath.Join(b.outDir, "api")
	if err := fsops.ReplaceDir(cfg.APIDir(), outAPI); err != nil {
		return NewFatalStageError(StageAPIDocs,
			fmt.Errorf("%w: stage api tree: %w", ErrAPIBuild, err))
	}
	indexSrc := filepath.Join(cfg.SourceDir(), cfg.API.IndexPage)
	if err := fsops.CopyFile(indexSrc, filepath.Join(outAPI, "index.html")); err != nil {
		return NewFatalStageError(StageAPIDocs,
			fmt.Errorf("%w: overlay api index page: %w", ErrAPIBuild, err))
	}
	slog.Info("API docs staged",
		logfields.Source(cfg.APIDir()),
		logfields.Dest(outAPI))
	return nil
}
