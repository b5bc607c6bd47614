// Command blogbuilder is a static blog generator: it merges Markdown posts
// with HTML templates and emits a deployable site with tag indexes and Atom
// feeds.
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blogbuilder/cmd/blogbuilder/commands"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("blogbuilder"),
		kong.Description("Build static blog sites from Markdown posts and templates."),
		kong.UsageOnError(),
	)

	if err := ctx.Run(&commands.Global{Logger: slog.Default()}, &cli); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
