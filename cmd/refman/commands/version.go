package commands

import (
	"fmt"

	"git.home.luguber.info/inful/refman/internal/version"
)

// VersionCmd implements the 'version' command.
type VersionCmd struct{}

func (VersionCmd) Run(_ *Global, _ *CLI) error {
	fmt.Printf("refman %s\n", version.Version)
	if version.GitCommit != "unknown" {
		fmt.Printf("  commit: %s\n", version.GitCommit)
	}
	if version.BuildTime != "unknown" {
		fmt.Printf("  built:  %s\n", version.BuildTime)
	}
	return nil
}
