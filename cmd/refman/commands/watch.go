package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/refman/internal/events"
	"git.home.luguber.info/inful/refman/internal/watch"
)

// WatchCmd implements the 'watch' command: build once, then rebuild whenever
// the manual sources change. The toolkit tree itself is not watched; API and
// example rebuilds still follow the marker rules on every pass.
type WatchCmd struct {
	Output   string        `short:"o" help:"Output directory for the built manual"`
	Debounce time.Duration `help:"Quiet interval before a change triggers a rebuild" default:"300ms"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	outDir := ResolveOutputDir(w.Output, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	builder, cleanup, err := NewBuilder(cfg, outDir)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.Events.URL != "" {
		pub, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Subject)
		if err != nil {
			return fmt.Errorf("events: %w", err)
		}
		defer func() { _ = pub.Close() }()
		builder.WithObserver(pub.Observer())
	}

	report, err := builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("initial build: %w", err)
	}
	fmt.Println(report.Summary())

	watcher, err := watch.New(func(ctx context.Context) error {
		_, err := builder.Build(ctx)
		return err
	}, cfg.SourceDir())
	if err != nil {
		return err
	}
	return watcher.WithDebounce(w.Debounce).Run(ctx)
}
