// Package config resolves the immutable build configuration handed to the
// pipeline entry point.
package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables consulted when the corresponding flag is unset.
const (
	EnvSource      = "BLOGBUILDER_SOURCE"
	EnvDest        = "BLOGBUILDER_DEST"
	EnvBaseURL     = "BLOGBUILDER_BASE_URL"
	EnvContentGlob = "BLOGBUILDER_CONTENT_GLOB"
	EnvLogLevel    = "BLOGBUILDER_LOG_LEVEL"
)

// Built-in defaults, used when neither flag nor environment provides a
// value.
const (
	DefaultSourceDir   = "source"
	DefaultDestDir     = "build"
	DefaultContentGlob = "**/*"
)

// Config is the immutable configuration record for one build. It is passed
// by value into the pipeline; nothing mutates it after resolution.
type Config struct {
	// SourceDir holds posts/, templates/, and assets/.
	SourceDir string

	// DestDir receives the generated site.
	DestDir string

	// BaseURL is prepended (with a separating slash) to post links.
	BaseURL string

	// ContentGlob filters which files under posts/ are treated as content
	// documents, matched against the posts-relative path.
	ContentGlob string
}

// Resolve builds a Config by precedence: explicit flag, then environment
// variable, then built-in default. A .env or .env.local file is loaded
// first (first one found wins); existing process environment is never
// overwritten.
func Resolve(source, dest, baseURL string) Config {
	loadEnvFile()
	return Config{
		SourceDir:   pick(source, EnvSource, DefaultSourceDir),
		DestDir:     pick(dest, EnvDest, DefaultDestDir),
		BaseURL:     pick(baseURL, EnvBaseURL, ""),
		ContentGlob: pick("", EnvContentGlob, DefaultContentGlob),
	}
}

func pick(flag, envKey, fallback string) string {
	if flag != "" {
		return flag
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return fallback
}

func loadEnvFile() {
	for _, path := range []string{".env", ".env.local"} {
		if err := godotenv.Load(path); err == nil {
			slog.Debug("Loaded environment variables", "path", path)
			return
		}
	}
}
