package post

import (
	"html/template"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/value"
)

func writePost(t *testing.T, sourceDir, rel, content string) string {
	t.Helper()
	path := filepath.Join(sourceDir, "posts", rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFile_MarkdownBody_IsRenderedToHTML(t *testing.T) {
	src := t.TempDir()
	path := writePost(t, src, "2024-03-10-hello.md", "---\ntitle: Hello\n---\n# Heading\n")

	p, err := NewParser(src, "https://example.com").ParseFile(path)
	require.NoError(t, err)

	text, ok := p.GetString("text")
	require.True(t, ok)
	require.Contains(t, text, "<h1>Heading</h1>")
}

func TestParseFile_HTMLBody_PassesThroughVerbatim(t *testing.T) {
	src := t.TempDir()
	body := "<p>raw &amp; unchanged</p>\n"
	path := writePost(t, src, "notes.html", "---\ntitle: Raw\n---\n"+body)

	p, err := NewParser(src, "").ParseFile(path)
	require.NoError(t, err)

	text, _ := p.GetString("text")
	require.Equal(t, body, text)
}

func TestParseFile_InjectsPathAndURL(t *testing.T) {
	src := t.TempDir()
	path := writePost(t, src, "2024-03-10-hello.md", "---\ntitle: Hello\n---\nbody\n")

	p, err := NewParser(src, "https://example.com").ParseFile(path)
	require.NoError(t, err)

	dest, _ := p.GetString("path")
	require.Equal(t, "2024-03-10-hello.html", dest)

	url, _ := p.GetString("url")
	require.Equal(t, "https://example.com/2024-03-10-hello.html", url)
}

func TestParseFile_MissingDate_DerivedFromPathPrefix(t *testing.T) {
	src := t.TempDir()
	path := writePost(t, src, "2024-03-10-hello.md", "---\ntitle: Hello\n---\nbody\n")

	p, err := NewParser(src, "").ParseFile(path)
	require.NoError(t, err)

	date, ok := p.GetString("date")
	require.True(t, ok)
	require.Equal(t, "2024-03-10T00:00:00Z", date)
}

func TestParseFile_MissingDateAndNoDatePrefix_LeavesDateAbsent(t *testing.T) {
	src := t.TempDir()
	path := writePost(t, src, "about.md", "---\ntitle: About\n---\nbody\n")

	p, err := NewParser(src, "").ParseFile(path)
	require.NoError(t, err)

	_, ok := p.GetString("date")
	require.False(t, ok)
}

func TestParseFile_ExplicitDate_IsNotOverwritten(t *testing.T) {
	src := t.TempDir()
	path := writePost(t, src, "2024-03-10-hello.md",
		"---\ntitle: Hello\ndate: 2020-05-05T12:00:00Z\n---\nbody\n")

	p, err := NewParser(src, "").ParseFile(path)
	require.NoError(t, err)

	date, _ := p.GetString("date")
	require.Equal(t, "2020-05-05T12:00:00Z", date)
}

func TestParseFile_OutsidePostsRoot_FailsWithPathError(t *testing.T) {
	src := t.TempDir()
	stray := filepath.Join(t.TempDir(), "stray.md")
	require.NoError(t, os.WriteFile(stray, []byte("---\ntitle: X\n---\nbody\n"), 0o644))

	_, err := NewParser(src, "").ParseFile(stray)
	require.Error(t, err)
	require.True(t, errors.IsKind(err, errors.KindOther))
}

func TestParseFile_MissingFile_FailsWithIOError(t *testing.T) {
	src := t.TempDir()

	_, err := NewParser(src, "").ParseFile(filepath.Join(src, "posts", "nope.md"))
	require.Error(t, err)
	require.True(t, errors.IsKind(err, errors.KindIO))
}

func TestLayout_DefaultsAndOverrides(t *testing.T) {
	require.Equal(t, "default", Post{}.Layout())

	p := Post{"layout": value.String("fancy")}
	require.Equal(t, "fancy", p.Layout())
}

func TestTagNames_StringAndArrayShapes(t *testing.T) {
	single := Post{"tags": value.String("a")}
	require.Equal(t, []string{"a"}, single.TagNames())

	many := Post{"tags": value.Array([]value.Value{
		value.String("a"),
		value.Int(7),
		value.String("b"),
	})}
	require.Equal(t, []string{"a", "b"}, many.TagNames())

	require.Nil(t, Post{}.TagNames())
	require.Nil(t, Post{"tags": value.Bool(true)}.TagNames())
}

func TestContext_ConvertsFieldsForTemplates(t *testing.T) {
	p := Post{
		"title": value.String("Hi"),
		"tags":  value.Array([]value.Value{value.String("a")}),
	}
	ctx := p.Context()
	require.Equal(t, "Hi", ctx["title"])
	require.Equal(t, []any{"a"}, ctx["tags"])
}

func TestContext_BodyIsTrustedHTML(t *testing.T) {
	p := Post{
		"title": value.String("<b>not trusted</b>"),
		"text":  value.String("<h1>Rendered</h1>"),
	}
	ctx := p.Context()
	require.Equal(t, template.HTML("<h1>Rendered</h1>"), ctx["text"])
	require.Equal(t, "<b>not trusted</b>", ctx["title"])
}
