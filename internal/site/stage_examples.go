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

// stageExamples builds the interactive example applications and stages them
// into the output tree.
//
// The marker is the index page of the first configured example inside the
// manual sources. When present, both the toolchain and the per-example
// staging into the sources are skipped; the source tree is trusted as-is.
// When absent, the toolkit and its examples are built and exactly the
// configured examples are copied into the manual sources, each replacing its
// previous copy. The staged source tree is then copied into the output
// directory on every build, again replacing any earlier tree.
func stageExamples(ctx context.Context, bs *BuildState) error {
	b := bs.Builder
	cfg := b.cfg

	marker := cfg.ExamplesMarkerPath()
	if marker != "" && fsops.Exists(marker) {
		slog.Info("Examples already built, skipping toolchain", logfields.Marker(marker))
	} else {
		bs.Report.ExamplesRebuilt = true
		t0 := time.Now()
		err := b.yarn.Bootstrap(ctx, cfg.RootDir(), cfg.Examples.Scripts...)
		b.recorder.ObserveToolDuration("yarn", time.Since(t0), err == nil)
		if err != nil {
			return classifyToolError(StageExamples, ErrExamplesBuild, err)
		}

		for _, name := range cfg.Examples.Names {
			src := cfg.ExampleBuildDir(name)
			dst := filepath.Join(cfg.ExamplesSourceDir(), name)
			if err := fsops.ReplaceDir(src, dst); err != nil {
				return NewFatalStageError(StageExamples,
					fmt.Errorf("%w: stage example %s: %w", ErrExamplesBuild, name, err))
			}
			bs.Report.ExamplesStaged = append(bs.Report.ExamplesStaged, name)
			slog.Debug("Example staged", logfields.Example(name), logfields.Dest(dst))
		}
	}

	outExamples := filepath.Join(b.outDir, "examples")
	if err := fsops.ReplaceDir(cfg.ExamplesSourceDir(), outExamples); err != nil {
		return NewFatalStageError(StageExamples,
			fmt.Errorf("%w: stage examples tree: %w", ErrExamplesBuild, err))
	}
	slog.Info("Examples staged",
		logfields.Source(cfg.ExamplesSourceDir()),
		logfields.Dest(outExamples))
	return nil
}
