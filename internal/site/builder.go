package site

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/blogbuilder/internal/atom"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
)

// Template names with fixed roles. Post pages use the post's own layout
// field instead.
const indexTemplate = "index"

// Builder runs one full build: assets, collection assembly, page rendering,
// and feed emission. The first failing step aborts the build; files already
// written stay on disk.
type Builder struct {
	cfg config.Config
}

// NewBuilder creates a Builder for the given configuration.
func NewBuilder(cfg config.Config) *Builder {
	return &Builder{cfg: cfg}
}

// Clean removes the destination directory.
func (b *Builder) Clean() error {
	slog.Info("Cleaning build directory", "dest", b.cfg.DestDir)
	if err := os.RemoveAll(b.cfg.DestDir); err != nil {
		return errors.IO(err)
	}
	return nil
}

// Build generates the static site from the source tree.
func (b *Builder) Build() error {
	slog.Info("Building site", "source", b.cfg.SourceDir, "dest", b.cfg.DestDir)

	engine, err := render.Load(filepath.Join(b.cfg.SourceDir, "templates"))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(b.cfg.DestDir, 0o755); err != nil {
		return errors.IO(err)
	}
	if err := copyAssets(filepath.Join(b.cfg.SourceDir, "assets"), b.cfg.DestDir); err != nil {
		return err
	}

	parser := post.NewParser(b.cfg.SourceDir, b.cfg.BaseURL)
	coll, err := Assemble(parser, parser.PostsDir(), b.cfg.ContentGlob)
	if err != nil {
		return err
	}

	if err := b.renderPosts(engine, coll); err != nil {
		return err
	}
	if err := b.renderIndexes(engine, coll); err != nil {
		return err
	}
	return b.writeFeeds(coll)
}

// renderPosts writes one HTML page per post at its destination path, using
// the post's layout template with the post itself as the data context.
func (b *Builder) renderPosts(engine *render.Engine, coll *Collection) error {
	for _, p := range coll.Posts {
		dest, ok := p.GetString("path")
		if !ok {
			// Normalization always injects path; a miss is a bug.
			return errors.New(errors.KindOther, "post has no destination path")
		}
		out := filepath.Join(b.cfg.DestDir, filepath.FromSlash(dest))
		if err := writePage(engine, p.Layout(), p.Context(), out); err != nil {
			return err
		}
	}
	return nil
}

// renderIndexes writes the global index and one index per tag.
func (b *Builder) renderIndexes(engine *render.Engine, coll *Collection) error {
	view := indexView(coll.Posts, coll.TagNames(), "")
	if err := writePage(engine, indexTemplate, view, filepath.Join(b.cfg.DestDir, "index.html")); err != nil {
		return err
	}
	for _, tag := range coll.TagNames() {
		view := indexView(coll.Tags[tag], coll.TagNames(), tag)
		out := filepath.Join(b.cfg.DestDir, tag, "index.html")
		if err := writePage(engine, indexTemplate, view, out); err != nil {
			return err
		}
	}
	return nil
}

// writeFeeds emits the site-wide Atom feed and one feed per tag.
func (b *Builder) writeFeeds(coll *Collection) error {
	if err := writeFeedFile(filepath.Join(b.cfg.DestDir, "atom.xml"), coll.Posts); err != nil {
		return err
	}
	for _, tag := range coll.TagNames() {
		if err := writeFeedFile(filepath.Join(b.cfg.DestDir, tag, "atom.xml"), coll.Tags[tag]); err != nil {
			return err
		}
	}
	return nil
}

// indexView is the render view for the global and per-tag index pages: the
// post sequence in scope, all known tag names, and the current tag (empty on
// the global index).
func indexView(posts []post.Post, tagNames []string, current string) map[string]any {
	contexts := make([]any, len(posts))
	for i, p := range posts {
		contexts[i] = p.Context()
	}
	return map[string]any{
		"posts": contexts,
		"tags":  tagNames,
		"tag":   current,
	}
}

func writePage(engine *render.Engine, template string, data any, out string) error {
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return errors.IO(err)
	}
	f, err := os.Create(out)
	if err != nil {
		return errors.IO(err)
	}
	defer func() { _ = f.Close() }()

	slog.Debug("Rendering page", "template", template, "out", out)
	if err := engine.Render(template, data, f); err != nil {
		return err
	}
	return nil
}

func writeFeedFile(out string, posts []post.Post) error {
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return errors.IO(err)
	}
	f, err := os.Create(out)
	if err != nil {
		return errors.IO(err)
	}
	defer func() { _ = f.Close() }()

	slog.Debug("Writing feed", "out", out, "posts", len(posts))
	return atom.WriteFeed(f, posts)
}
