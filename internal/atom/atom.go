// Package atom emits a minimal Atom feed over a sequence of posts.
//
// The output is a deliberately minimal subset of RFC 4287: one entry per
// post with title, published, and link taken from the post's fields, each
// omitted when absent. The feed-level id and updated elements are not
// populated; consumers needing a fully conformant feed should post-process.
package atom

import (
	"encoding/xml"
	"io"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

const (
	header = "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<feed xmlns=\"http://www.w3.org/2005/Atom\">\n"
	footer = "</feed>\n"
)

// WriteFeed serializes posts into an Atom document on w, preserving the
// order of the input sequence.
func WriteFeed(w io.Writer, posts []post.Post) error {
	if _, err := io.WriteString(w, header); err != nil {
		return errors.IO(err)
	}
	for _, p := range posts {
		if err := writeEntry(w, p); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, footer); err != nil {
		return errors.IO(err)
	}
	return nil
}

func writeEntry(w io.Writer, p post.Post) error {
	var b strings.Builder
	b.WriteString("  <entry>\n")
	if title, ok := p.GetString("title"); ok {
		b.WriteString("    <title>" + escape(title) + "</title>\n")
	}
	if date, ok := p.GetString("date"); ok {
		b.WriteString("    <published>" + escape(date) + "</published>\n")
	}
	if url, ok := p.GetString("url"); ok {
		b.WriteString("    <link href=\"" + escape(url) + "\" />\n")
	}
	b.WriteString("  </entry>\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.IO(err)
	}
	return nil
}

func escape(s string) string {
	var b strings.Builder
	// EscapeText only fails on a failing writer; strings.Builder cannot.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
