// Package preview serves a built site over HTTP and rebuilds it when the
// source tree changes.
package preview

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// debounceDelay coalesces bursts of filesystem events (editors often write
// several in quick succession) into a single rebuild.
const debounceDelay = 300 * time.Millisecond

// Server watches sourceDir and serves destDir. Rebuild is invoked after a
// debounced change; a failing rebuild is logged and serving continues with
// the last good output.
type Server struct {
	SourceDir string
	DestDir   string
	Addr      string
	Rebuild   func() error
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.KindIO, "create watcher")
	}
	defer func() { _ = watcher.Close() }()

	if err := addDirsRecursive(watcher, s.SourceDir); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    s.Addr,
		Handler: http.FileServer(http.Dir(s.DestDir)),
	}
	serveErr := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()
	slog.Info("Preview server listening", "addr", fmt.Sprintf("http://localhost%s", s.Addr), "watching", s.SourceDir)

	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return s.shutdown(httpServer)
		case err := <-serveErr:
			return errors.Wrap(err, errors.KindIO, "http server")
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldIgnoreEvent(ev.Name) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				if fi, statErr := os.Stat(ev.Name); statErr == nil && fi.IsDir() {
					_ = addDirsRecursive(watcher, ev.Name)
				}
			}
			slog.Debug("File change detected", "path", ev.Name, "op", ev.Op.String())
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
				fire = debounce.C
			} else {
				debounce.Reset(debounceDelay)
			}
		case <-fire:
			debounce = nil
			fire = nil
			slog.Info("Change detected; rebuilding site")
			if err := s.Rebuild(); err != nil {
				slog.Warn("Rebuild failed; still serving last good build", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)
		}
	}
}

func (s *Server) shutdown(httpServer *http.Server) error {
	slog.Info("Shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown error", "error", err)
	}
	return nil
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if addErr := w.Add(path); addErr != nil {
				slog.Warn("Watch add failed", "dir", path, "error", addErr)
			}
		}
		return nil
	})
}

// shouldIgnoreEvent filters hidden files and editor temp/swap files so they
// do not trigger rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		(strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#")) {
		return true
	}
	return base == "Thumbs.db"
}
