package commands

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/refman/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int    `short:"n" help:"Number of builds to show" default:"10"`
	Prune bool   `help:"Drop builds beyond the configured retention first"`
	Show  string `help:"Print the stored report JSON for one build ID"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}

	store, err := history.NewStore(HistoryPath(cfg))
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()

	if h.Show != "" {
		report, err := store.Report(ctx, h.Show)
		if err != nil {
			return err
		}
		fmt.Println(string(report))
		return nil
	}

	if h.Prune {
		deleted, err := store.Prune(ctx, cfg.History.Keep)
		if err != nil {
			return fmt.Errorf("prune history: %w", err)
		}
		fmt.Printf("Pruned %d builds\n", deleted)
	}

	entries, err := store.Recent(ctx, h.Limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No builds recorded")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %-8s  v%-10s  pages=%-4d  %-8s  %s\n",
			e.Start.Format("2006-01-02 15:04:05"),
			e.Outcome,
			e.Version,
			e.RenderedPages,
			e.Duration().Truncate(time.Millisecond),
			e.ID)
	}
	return nil
}
