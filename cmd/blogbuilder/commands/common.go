package commands

import (
	"log/slog"
	"os"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// Global context passed to subcommands if we need to share global state
// later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags. Source/dest/base-url default to empty so
// config.Resolve can tell an explicit flag from an unset one (precedence:
// flag > env > default).
type CLI struct {
	Source  string `short:"s" help:"Directory containing post and template source (default: source/)"`
	Dest    string `short:"o" name:"dest" help:"Directory where output will be stored (default: build/)"`
	BaseURL string `name:"base-url" help:"Base URL prepended to post links"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build BuildCmd `cmd:"" help:"Build static site pages"`
	Clean CleanCmd `cmd:"" help:"Remove the destination directory"`
	Init  InitCmd  `cmd:"" help:"Scaffold a new site source tree"`
	Serve ServeCmd `cmd:"" help:"Build, serve locally, and rebuild on change"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(c.Verbose),
	}))
	slog.SetDefault(logger)
	return nil
}

// ResolveConfig applies flag > env > default precedence.
func (c *CLI) ResolveConfig() config.Config {
	return config.Resolve(c.Source, c.Dest, c.BaseURL)
}

// parseLogLevel picks the log level from the verbose flag or the
// BLOGBUILDER_LOG_LEVEL environment variable (the flag wins).
func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(os.Getenv(config.EnvLogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
