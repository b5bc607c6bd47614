package commands

import (
	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct{}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg := root.ResolveConfig()
	return site.NewBuilder(cfg).Build()
}
