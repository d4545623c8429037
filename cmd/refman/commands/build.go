package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
)

// BuildCmd implements the 'build' command: one full manual build.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory for the built manual"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	outDir := ResolveOutputDir(b.Output, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	builder, cleanup, err := NewBuilder(cfg, outDir)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	fmt.Println(report.Summary())
	fmt.Printf("Manual written to %s\n", outDir)
	return nil
}
