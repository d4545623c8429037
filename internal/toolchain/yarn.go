package toolchain

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/refman/internal/logfields"
)

// Yarn drives the npm-bootstrapped yarn workflow used by the toolkit
// repositories: install yarn globally, install workspace dependencies, then
// run the requested package scripts. Every step runs in the repository root
// and any failure aborts the chain.
type Yarn struct {
	runner Runner
}

func NewYarn(runner Runner) *Yarn {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Yarn{runner: runner}
}

// Bootstrap runs `npm install -g yarn`, a bare `yarn` install and then
// `yarn <script>` for each script, all inside dir.
func (y *Yarn) Bootstrap(ctx context.Context, dir string, scripts ...string) error {
	if _, err := y.runner.LookPath("npm"); err != nil {
		return fmt.Errorf("yarn bootstrap requires npm: %w", err)
	}

	slog.Info("Bootstrapping yarn toolchain", logfields.Dir(dir))
	if err := y.runner.Run(ctx, dir, "npm", "install", "-g", "yarn"); err != nil {
		return err
	}
	if err := y.runner.Run(ctx, dir, "yarn"); err != nil {
		return err
	}
	for _, script := range scripts {
		slog.Info("Running yarn script", logfields.Command("yarn "+script), logfields.Dir(dir))
		if err := y.runner.Run(ctx, dir, "yarn", script); err != nil {
			return err
		}
	}
	return nil
}
