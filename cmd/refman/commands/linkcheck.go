package commands

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"syscall"

	"git.home.luguber.info/inful/refman/internal/linkcheck"
)

// LinkcheckCmd implements the 'linkcheck' command. It verifies the internal
// references of a built manual; external links are tallied, never fetched.
type LinkcheckCmd struct {
	Dir string `arg:"" optional:"" help:"Site directory to check (defaults to the configured output)"`
}

func (l *LinkcheckCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	dir := l.Dir
	if dir == "" {
		dir = ResolveOutputDir("", cfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checker := linkcheck.New(dir, linkcheck.Options{
		KnownPrefixes: intersphinxPrefixes(cfg.Intersphinx),
	})
	res, err := checker.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Checked %d pages, %d links (%d external, %d known inventories)\n",
		res.Pages, res.Links, res.External, res.KnownExternal)
	if !res.Ok() {
		for _, issue := range res.Issues {
			fmt.Println(issue.String())
		}
		return fmt.Errorf("%d broken references", len(res.Issues))
	}
	fmt.Println("No broken references")
	return nil
}

// intersphinxPrefixes turns the configured external inventory URLs into
// recognized link prefixes.
func intersphinxPrefixes(inventories map[string]string) []string {
	prefixes := make([]string, 0, len(inventories))
	for url := range inventories {
		prefixes = append(prefixes, url)
	}
	sort.Strings(prefixes)
	return prefixes
}
