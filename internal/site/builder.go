// Package site orchestrates a full manual build: preparing the output tree,
// staging the changelog, building and staging API docs and example apps
// through the JavaScript toolchain, rendering the narrative pages and
// persisting a build report. Stages run in a fixed order; the first fatal
// error aborts the build.
package site

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/refman/internal/config"
	"git.home.luguber.info/inful/refman/internal/gitinfo"
	"git.home.luguber.info/inful/refman/internal/logfields"
	"git.home.luguber.info/inful/refman/internal/metrics"
	"git.home.luguber.info/inful/refman/internal/render"
	"git.home.luguber.info/inful/refman/internal/toolchain"
)

// Builder runs the manual build pipeline for one configuration.
type Builder struct {
	cfg       *config.Config
	outDir    string
	runner    toolchain.Runner
	yarn      *toolchain.Yarn
	renderer  render.Renderer
	recorder  metrics.Recorder
	observers []BuildObserver
}

// NewBuilder creates a Builder for cfg writing into outDir. The default page
// renderer is constructed here so theme resolution problems surface before
// any stage runs.
func NewBuilder(cfg *config.Config, outDir string) (*Builder, error) {
	engine, err := render.NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	runner := toolchain.ExecRunner{}
	return &Builder{
		cfg:      cfg,
		outDir:   outDir,
		runner:   runner,
		yarn:     toolchain.NewYarn(runner),
		renderer: engine,
		recorder: metrics.NoopRecorder{},
	}, nil
}

// WithRunner replaces the toolchain command runner (tests inject a
// RecordingRunner).
func (b *Builder) WithRunner(r toolchain.Runner) *Builder {
	b.runner = r
	b.yarn = toolchain.NewYarn(r)
	return b
}

// WithRenderer replaces the page renderer.
func (b *Builder) WithRenderer(r render.Renderer) *Builder {
	b.renderer = r
	return b
}

// WithRecorder replaces the metrics recorder.
func (b *Builder) WithRecorder(rec metrics.Recorder) *Builder {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	b.recorder = rec
	return b
}

// WithObserver registers build lifecycle observers.
func (b *Builder) WithObserver(obs ...BuildObserver) *Builder {
	b.observers = append(b.observers, obs...)
	return b
}

// OutDir returns the build output directory.
func (b *Builder) OutDir() string { return b.outDir }

// Config returns the active configuration.
func (b *Builder) Config() *config.Config { return b.cfg }

// Build runs the full pipeline and returns the report. The report is non-nil
// even when err is set; callers persist or inspect it either way.
func (b *Builder) Build(ctx context.Context) (*BuildReport, error) {
	report := newBuildReport(b.cfg.Site.Project, b.cfg.Version)
	report.Stylesheets = b.cfg.Theme.Stylesheets
	if info, err := gitinfo.Detect(b.cfg.RootDir()); err == nil {
		report.Commit = info.Commit
		report.Branch = info.Branch
	} else {
		slog.Debug("No repository information for report", logfields.Error(err))
	}
	bs := newBuildState(b, report)

	slog.Info("Build started",
		logfields.Project(report.Project),
		logfields.Version(report.Version),
		logfields.Output(b.outDir))
	b.notifyBuildStart(report)

	stages := NewPipeline().
		Add(StagePrepareOutput, stagePrepareOutput).
		Add(StageChangelog, stageChangelog).
		Add(StageAPIDocs, stageAPIDocs).
		Add(StageExamples, stageExamples).
		Add(StageRenderPages, stageRenderPages).
		Add(StageWriteReport, stageWriteReport).
		Build()

	err := runStages(ctx, bs, stages)

	report.finish()
	report.deriveOutcome()
	b.recorder.ObserveBuildDuration(report.Duration())
	b.recorder.IncBuildOutcome(string(report.Outcome))
	b.notifyBuildComplete(report)

	slog.Info("Build finished", logfields.Summary(report.Summary()))
	return report, err
}

func (b *Builder) notifyBuildStart(r *BuildReport) {
	for _, o := range b.observers {
		o.OnBuildStart(r)
	}
}

func (b *Builder) notifyStageComplete(s StageName, d time.Duration, err error) {
	for _, o := range b.observers {
		o.OnStageComplete(s, d, err)
	}
}

func (b *Builder) notifyBuildComplete(r *BuildReport) {
	for _, o := range b.observers {
		o.OnBuildComplete(r)
	}
}
