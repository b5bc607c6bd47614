package commands

import (
	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

// CleanCmd implements the 'clean' command.
type CleanCmd struct{}

func (c *CleanCmd) Run(_ *Global, root *CLI) error {
	cfg := root.ResolveConfig()
	return site.NewBuilder(cfg).Clean()
}
