// Package site assembles the post collection and orchestrates rendering of
// the full site: index pages, per-tag pages, per-post pages, and feeds.
package site

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// Collection is the complete, date-sorted sequence of posts for one build,
// together with the tag index derived from it.
type Collection struct {
	// Posts is ordered newest first. Posts without a parseable date sort
	// as if dated at the Unix epoch.
	Posts []post.Post

	// Tags maps each tag name to the posts carrying it, in Collection
	// order. Repeated tag values on one post produce repeated entries.
	Tags map[string][]post.Post
}

var unixEpoch = time.Unix(0, 0).UTC()

// Assemble walks the posts root, parses every content file matching glob,
// sorts the result newest first, and builds the tag index.
//
// Any single failing post aborts assembly. Traversal is lexical
// (filepath.WalkDir), so posts with equal or missing dates order
// deterministically by source path.
func Assemble(parser *post.Parser, postsDir, glob string) (*Collection, error) {
	var posts []post.Post
	err := filepath.WalkDir(postsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.IO(err)
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(postsDir, path)
		if relErr != nil {
			return errors.Wrap(relErr, errors.KindOther, "relativize post path")
		}
		if glob != "" {
			matched, matchErr := doublestar.Match(glob, filepath.ToSlash(rel))
			if matchErr != nil {
				return errors.Wrap(matchErr, errors.KindOther, "invalid content glob "+glob)
			}
			if !matched {
				slog.Debug("Skipping non-content file", "path", path)
				return nil
			}
		}
		p, parseErr := parser.ParseFile(path)
		if parseErr != nil {
			return parseErr
		}
		posts = append(posts, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Stable descending sort keeps discovery (lexical path) order among
	// posts with equal dates.
	sort.SliceStable(posts, func(i, j int) bool {
		return sortKey(posts[i]).After(sortKey(posts[j]))
	})

	tags := make(map[string][]post.Post)
	for _, p := range posts {
		for _, tag := range p.TagNames() {
			tags[tag] = append(tags[tag], p)
		}
	}

	slog.Info("Collection assembled", "posts", len(posts), "tags", len(tags))
	return &Collection{Posts: posts, Tags: tags}, nil
}

// sortKey derives a post's ordering key from the date field: RFC 3339 when
// it parses, a bare YYYY-MM-DD calendar date as midnight UTC otherwise, and
// the Unix epoch for anything else.
func sortKey(p post.Post) time.Time {
	if s, ok := p.GetString("date"); ok {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t
		}
	}
	return unixEpoch
}

// TagNames returns the distinct tag names in lexicographic order.
func (c *Collection) TagNames() []string {
	names := make([]string, 0, len(c.Tags))
	for name := range c.Tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
