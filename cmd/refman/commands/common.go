// Package commands implements the refman CLI commands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"git.home.luguber.info/inful/refman/internal/config"
	"git.home.luguber.info/inful/refman/internal/gitinfo"
	"git.home.luguber.info/inful/refman/internal/history"
	"git.home.luguber.info/inful/refman/internal/logfields"
	"git.home.luguber.info/inful/refman/internal/site"
)

// DefaultOutputDir is used when neither the flag nor the config names one.
const DefaultOutputDir = "./site"

// Global carries state shared across subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command definition with global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path" default:"refman.yaml"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	VersionFlag kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build     BuildCmd     `cmd:"" help:"Build the reference manual"`
	Init      InitCmd      `cmd:"" help:"Initialize a new configuration file"`
	Clean     CleanCmd     `cmd:"" help:"Remove build output and staged sources so the next build starts fresh"`
	Serve     ServeCmd     `cmd:"" help:"Serve the built manual over HTTP"`
	Watch     WatchCmd     `cmd:"" help:"Rebuild the manual whenever its sources change"`
	Linkcheck LinkcheckCmd `cmd:"" help:"Verify internal references of the built manual"`
	History   HistoryCmd   `cmd:"" help:"Show recorded builds"`
	Version   VersionCmd   `cmd:"" help:"Show version information"`
}

// AfterApply runs after flag parsing; it installs the default logger once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)
	return nil
}

// LoadConfig loads the configuration and completes the repository context
// from the local checkout.
func LoadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	fillRepoContext(cfg)
	return cfg, nil
}

// fillRepoContext completes unset edit-link fields from the toolkit checkout.
// Not being a git checkout is fine; the fields stay empty.
func fillRepoContext(cfg *config.Config) {
	if !cfg.Context.Display {
		return
	}
	if cfg.Context.Owner != "" && cfg.Context.Repo != "" && cfg.Context.Branch != "" {
		return
	}
	info, err := gitinfo.Detect(cfg.RootDir())
	if err != nil {
		slog.Debug("Repository context detection failed", logfields.Error(err))
		return
	}
	if cfg.Context.Owner == "" {
		cfg.Context.Owner = info.Owner
	}
	if cfg.Context.Repo == "" {
		cfg.Context.Repo = info.Repo
	}
	if cfg.Context.Branch == "" {
		cfg.Context.Branch = info.Branch
	}
}

// ResolveOutputDir determines the output directory.
// Priority: CLI flag > config paths.output > DefaultOutputDir.
func ResolveOutputDir(cliOutput string, cfg *config.Config) string {
	if cliOutput != "" {
		return cliOutput
	}
	if cfg.Paths.Output != "" {
		return cfg.Paths.Output
	}
	return DefaultOutputDir
}

// HistoryPath resolves the history database location against the toolkit root.
func HistoryPath(cfg *config.Config) string {
	if filepath.IsAbs(cfg.History.Path) {
		return cfg.History.Path
	}
	return filepath.Join(cfg.RootDir(), cfg.History.Path)
}

// NewBuilder assembles a site builder with history recording wired in. The
// returned cleanup closes the history store and is safe to call always.
func NewBuilder(cfg *config.Config, outDir string) (*site.Builder, func(), error) {
	b, err := site.NewBuilder(cfg, outDir)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {}
	if !cfg.History.Disabled {
		store, err := history.NewStore(HistoryPath(cfg))
		if err != nil {
			// History is best-effort; a broken store never blocks builds.
			slog.Warn("Build history disabled", logfields.Error(err))
		} else {
			b.WithObserver(store.Observer())
			cleanup = func() { _ = store.Close() }
		}
	}
	return b, cleanup, nil
}
