// Package post parses content documents into normalized Post records: front
// matter split from the body, the body rendered to HTML, and the derived
// text/path/url/date fields injected.
package post

import (
	"bytes"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/value"
)

// DefaultLayout is the template used when a post does not name one.
const DefaultLayout = "default"

// Post is the normalized in-memory record for one content document: its
// front-matter fields plus the injected text, path, url, and date.
type Post map[string]value.Value

// GetString returns the string field under key, or ok=false when the key is
// absent or not a string.
func (p Post) GetString(key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	return v.AsString()
}

// Layout resolves the post's template name, defaulting to DefaultLayout.
func (p Post) Layout() string {
	if layout, ok := p.GetString("layout"); ok {
		return layout
	}
	return DefaultLayout
}

// TagNames extracts tag names from the post's tags field: a string is one
// tag, an array contributes each string element in order (non-string
// elements are ignored), anything else contributes nothing.
func (p Post) TagNames() []string {
	v, ok := p["tags"]
	if !ok {
		return nil
	}
	if s, ok := v.AsString(); ok {
		return []string{s}
	}
	arr, ok := v.AsArray()
	if !ok {
		return nil
	}
	var names []string
	for _, e := range arr {
		if s, ok := e.AsString(); ok {
			names = append(names, s)
		}
	}
	return names
}

// Context converts the post to plain Go values for the template engine. The
// body under "text" is already-rendered HTML and is marked trusted; every
// other field stays a plain value and is escaped on interpolation.
func (p Post) Context() map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v.Interface()
	}
	if text, ok := p.GetString("text"); ok {
		out["text"] = template.HTML(text)
	}
	return out
}

// Parser reads content files from a source tree and normalizes them into
// Posts.
type Parser struct {
	sourceDir string
	baseURL   string
	markdown  goldmark.Markdown
}

// NewParser creates a Parser rooted at sourceDir. Destination paths are
// computed relative to sourceDir/posts and links are prefixed with baseURL.
func NewParser(sourceDir, baseURL string) *Parser {
	return &Parser{
		sourceDir: sourceDir,
		baseURL:   baseURL,
		markdown:  goldmark.New(),
	}
}

// PostsDir returns the directory the parser expects content files under.
func (p *Parser) PostsDir() string {
	return filepath.Join(p.sourceDir, "posts")
}

// ParseFile parses and normalizes one content file.
//
// Markdown bodies (.md, .markdown) are rendered to HTML; any other body
// passes through verbatim. The rendered body is stored under "text", the
// destination-relative path (extension rewritten to .html) under "path", and
// the base-URL-prefixed link under "url". A missing "date" is derived from a
// YYYY-MM-DD path prefix when one exists.
func (p *Parser) ParseFile(path string) (Post, error) {
	slog.Debug("Parsing post", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IO(err)
	}
	defer func() { _ = f.Close() }()

	front, body, err := ParseFrontMatter(f, path)
	if err != nil {
		return nil, err
	}
	post := Post(front)

	text := body
	if isMarkdown(path) {
		var buf bytes.Buffer
		if err := p.markdown.Convert([]byte(body), &buf); err != nil {
			return nil, errors.Wrap(err, errors.KindOther, "render markdown")
		}
		text = buf.String()
	}
	post["text"] = value.String(text)

	rel, err := filepath.Rel(p.PostsDir(), path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, errors.New(errors.KindOther, "post path is not under the posts root: "+path)
	}
	dest := rewriteExt(filepath.ToSlash(rel), ".html")
	post["path"] = value.String(dest)
	post["url"] = value.String(p.baseURL + "/" + dest)

	if _, ok := post["date"]; !ok {
		if t, ok := dateFromPath(dest); ok {
			post["date"] = value.String(t.Format(time.RFC3339))
		}
	}
	return post, nil
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func rewriteExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// dateFromPath attempts to read a YYYY-MM-DD calendar date from the first
// ten characters of a destination-relative path. The resulting time is
// midnight UTC.
func dateFromPath(path string) (time.Time, bool) {
	if len(path) < 10 {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", path[:10])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
