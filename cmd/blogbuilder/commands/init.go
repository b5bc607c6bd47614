package commands

import (
	"fmt"

	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing files"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	cfg := root.ResolveConfig()
	if err := site.Scaffold(cfg.SourceDir, i.Force); err != nil {
		return err
	}
	fmt.Printf("Initialized site skeleton in %s\n", cfg.SourceDir)
	return nil
}
