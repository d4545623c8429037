package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/refman/internal/logfields"
)

// CleanCmd implements the 'clean' command. Besides the output directory it
// removes the staged API tree, examples and changelog from the source tree,
// so the build markers disappear and the next build runs the toolchain again.
type CleanCmd struct {
	Output string `short:"o" help:"Output directory to remove"`
}

func (c *CleanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}

	targets := []string{
		ResolveOutputDir(c.Output, cfg),
		cfg.APIDir(),
		cfg.ExamplesSourceDir(),
		filepath.Join(cfg.SourceDir(), "changelog.md"),
	}
	for _, target := range targets {
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("remove %s: %w", target, err)
		}
		slog.Debug("Removed", logfields.Path(target))
	}

	fmt.Println("Removed build output and staged sources")
	return nil
}
