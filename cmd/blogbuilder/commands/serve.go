package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/blogbuilder/internal/preview"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

// ServeCmd implements the 'serve' command: build once, serve the output
// locally, and rebuild whenever the source tree changes.
type ServeCmd struct {
	Port int `short:"p" help:"Port to listen on" default:"8080"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg := root.ResolveConfig()
	builder := site.NewBuilder(cfg)

	// A broken initial build should not keep the server from starting;
	// the next successful rebuild replaces the output.
	if err := builder.Build(); err != nil {
		slog.Error("Initial build failed", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	server := &preview.Server{
		SourceDir: cfg.SourceDir,
		DestDir:   cfg.DestDir,
		Addr:      fmt.Sprintf(":%d", s.Port),
		Rebuild:   builder.Build,
	}
	return server.Run(ctx)
}
