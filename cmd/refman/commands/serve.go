package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/refman/internal/events"
	"git.home.luguber.info/inful/refman/internal/metrics"
	"git.home.luguber.info/inful/refman/internal/server"
)

// ServeCmd implements the 'serve' command: build once, then serve the manual
// with health, status and optional metrics endpoints. Periodic rebuilds run
// when serve.rebuild_every is configured.
type ServeCmd struct {
	Output  string `short:"o" help:"Output directory to build and serve"`
	Addr    string `help:"Listen address (overrides serve.addr)"`
	NoBuild bool   `help:"Skip the initial build and serve the existing output"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Serve.Addr = s.Addr
	}
	outDir := ResolveOutputDir(s.Output, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	builder, cleanup, err := NewBuilder(cfg, outDir)
	if err != nil {
		return err
	}
	defer cleanup()

	var reg *prom.Registry
	if cfg.Serve.Metrics {
		reg = prom.NewRegistry()
		builder.WithRecorder(metrics.NewPrometheusRecorder(reg))
	}

	if cfg.Events.URL != "" {
		pub, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Subject)
		if err != nil {
			return fmt.Errorf("events: %w", err)
		}
		defer func() { _ = pub.Close() }()
		builder.WithObserver(pub.Observer())
	}

	srv := server.New(cfg, builder)
	if reg != nil {
		srv.WithMetricsRegistry(reg)
	}

	if !s.NoBuild {
		report, err := builder.Build(ctx)
		if report != nil {
			srv.SetLastReport(report)
		}
		if err != nil {
			return fmt.Errorf("initial build: %w", err)
		}
		fmt.Println(report.Summary())
	}

	return srv.Run(ctx)
}
