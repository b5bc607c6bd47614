package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

const testDefaultTemplate = "<article><h1>{{.title}}</h1>{{.text}}</article>\n"
const testIndexTemplate = "tag:{{.tag}}|posts:{{range .posts}}{{.title}};{{end}}|tags:{{join .tags}}\n"

func scaffoldSource(t *testing.T, sourceDir string) {
	t.Helper()
	write := func(rel, content string) {
		path := filepath.Join(sourceDir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("templates/default.html.tmpl", testDefaultTemplate)
	write("templates/index.html.tmpl", testIndexTemplate)
	write("posts/2024-01-01-first.md", "---\ntitle: First\ntags:\n  - go\n  - web\n---\n# First\n")
	write("posts/2024-06-01-second.md", "---\ntitle: Second\ntags: go\n---\n# Second\n")
	write("assets/style.css", "body {}\n")
	write("assets/.hidden", "secret\n")
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	src := t.TempDir()
	scaffoldSource(t, src)
	return config.Config{
		SourceDir:   src,
		DestDir:     filepath.Join(t.TempDir(), "out"),
		BaseURL:     "https://blog.example",
		ContentGlob: "**/*",
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestBuild_WritesPostPagesAtDestinationPaths(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, NewBuilder(cfg).Build())

	page := readFile(t, filepath.Join(cfg.DestDir, "2024-01-01-first.html"))
	require.Contains(t, page, "<h1>First</h1>")
}

func TestBuild_MarkdownBody_EmitsUnescapedHTML(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.SourceDir, "posts", "2024-08-01-markup.md"),
		[]byte("---\ntitle: Markup\n---\nSome **bold** text.\n"), 0o644))

	require.NoError(t, NewBuilder(cfg).Build())

	page := readFile(t, filepath.Join(cfg.DestDir, "2024-08-01-markup.html"))
	require.Contains(t, page, "<strong>bold</strong>")
	require.NotContains(t, page, "&lt;strong&gt;")
}

func TestBuild_NonBodyFields_AreStillEscaped(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.SourceDir, "posts", "2024-08-02-sneaky.md"),
		[]byte("---\ntitle: <script>alert(1)</script>\n---\nbody\n"), 0o644))

	require.NoError(t, NewBuilder(cfg).Build())

	page := readFile(t, filepath.Join(cfg.DestDir, "2024-08-02-sneaky.html"))
	require.NotContains(t, page, "<script>alert(1)</script>")
	require.Contains(t, page, "&lt;script&gt;")
}

func TestBuild_GlobalIndex_ListsPostsNewestFirstWithAllTags(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, NewBuilder(cfg).Build())

	index := readFile(t, filepath.Join(cfg.DestDir, "index.html"))
	require.Contains(t, index, "tag:|")
	require.Contains(t, index, "posts:Second;First;")
	require.Contains(t, index, "tags:go, web")
}

func TestBuild_PerTagIndexAndFeed_ScopedToBucket(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, NewBuilder(cfg).Build())

	webIndex := readFile(t, filepath.Join(cfg.DestDir, "web", "index.html"))
	require.Contains(t, webIndex, "tag:web|")
	require.Contains(t, webIndex, "posts:First;")
	require.NotContains(t, webIndex, "Second")

	webFeed := readFile(t, filepath.Join(cfg.DestDir, "web", "atom.xml"))
	require.Equal(t, 1, strings.Count(webFeed, "<entry>"))
	require.Contains(t, webFeed, "<title>First</title>")
}

func TestBuild_SiteFeed_CoversWholeCollectionInOrder(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, NewBuilder(cfg).Build())

	feed := readFile(t, filepath.Join(cfg.DestDir, "atom.xml"))
	require.Equal(t, 2, strings.Count(feed, "<entry>"))
	require.Less(t, strings.Index(feed, "Second"), strings.Index(feed, "First"))
	require.Contains(t, feed, `<link href="https://blog.example/2024-06-01-second.html" />`)
}

func TestBuild_CopiesAssetsSkippingHiddenFiles(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, NewBuilder(cfg).Build())

	require.FileExists(t, filepath.Join(cfg.DestDir, "style.css"))
	require.NoFileExists(t, filepath.Join(cfg.DestDir, ".hidden"))
}

func TestBuild_MissingTemplatesDirectory_Fails(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.RemoveAll(filepath.Join(cfg.SourceDir, "templates")))

	require.Error(t, NewBuilder(cfg).Build())
}

func TestBuild_PostWithCustomLayout_UsesThatTemplate(t *testing.T) {
	cfg := testConfig(t)
	custom := "CUSTOM:{{.title}}\n"
	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.SourceDir, "templates", "fancy.html.tmpl"), []byte(custom), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.SourceDir, "posts", "2024-07-01-styled.md"),
		[]byte("---\ntitle: Styled\nlayout: fancy\n---\nbody\n"), 0o644))

	require.NoError(t, NewBuilder(cfg).Build())

	page := readFile(t, filepath.Join(cfg.DestDir, "2024-07-01-styled.html"))
	require.Equal(t, "CUSTOM:Styled\n", page)
}

func TestClean_RemovesDestinationDirectory(t *testing.T) {
	cfg := testConfig(t)
	builder := NewBuilder(cfg)
	require.NoError(t, builder.Build())
	require.DirExists(t, cfg.DestDir)

	require.NoError(t, builder.Clean())
	require.NoDirExists(t, cfg.DestDir)
}

func TestScaffold_ThenBuild_ProducesWorkingSite(t *testing.T) {
	src := filepath.Join(t.TempDir(), "site")
	require.NoError(t, Scaffold(src, false))

	cfg := config.Config{
		SourceDir:   src,
		DestDir:     filepath.Join(t.TempDir(), "out"),
		ContentGlob: "**/*",
	}
	require.NoError(t, NewBuilder(cfg).Build())
	require.FileExists(t, filepath.Join(cfg.DestDir, "index.html"))
	require.FileExists(t, filepath.Join(cfg.DestDir, "meta", "index.html"))
	require.FileExists(t, filepath.Join(cfg.DestDir, "style.css"))
}

func TestScaffold_ExistingFileWithoutForce_Refuses(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, Scaffold(src, false))

	err := Scaffold(src, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "refusing to overwrite")

	require.NoError(t, Scaffold(src, true))
}
