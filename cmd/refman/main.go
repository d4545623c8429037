// Package main is the refman entry point. refman builds the HTML reference
// manual for a JavaScript widget toolkit: it stages the changelog, drives the
// toolkit's yarn scripts to produce API docs and example applications,
// renders the markdown manual sources, and assembles everything under one
// output directory.
package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/refman/cmd/refman/commands"
	"git.home.luguber.info/inful/refman/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("refman"),
		kong.Description("Reference manual builder for a JavaScript widget toolkit."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)
	err := ctx.Run(&commands.Global{}, cli)
	ctx.FatalIfErrorf(err)
}
