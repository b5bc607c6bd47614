package site

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

const scaffoldDefaultTemplate = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>{{.title}}</title>
    <link rel="stylesheet" href="/style.css">
  </head>
  <body>
    <h1>{{.title}}</h1>
    {{if .date}}<p class="date">{{formatDateTime .date "January 2, 2006"}}</p>{{end}}
    {{if .tags}}<p class="tags">{{join .tags}}</p>{{end}}
    {{.text}}
  </body>
</html>
`

const scaffoldIndexTemplate = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>{{if .tag}}Posts tagged {{.tag}}{{else}}All posts{{end}}</title>
    <link rel="stylesheet" href="/style.css">
  </head>
  <body>
    <h1>{{if .tag}}Posts tagged {{.tag}}{{else}}All posts{{end}}</h1>
    <ul>
      {{range .posts}}
      <li><a href="{{.url}}">{{.title}}</a>{{if .date}} · {{formatDateTime .date "January 2, 2006"}}{{end}}</li>
      {{end}}
    </ul>
    <p>Tags:
      {{range .tags}}<a href="/{{.}}/">{{.}}</a> {{end}}
    </p>
  </body>
</html>
`

const scaffoldStylesheet = `body { max-width: 46rem; margin: 2rem auto; font-family: sans-serif; }
.date, .tags { color: #666; }
`

const scaffoldPostBody = `---
title: Hello, World
tags:
  - meta
---
This is your first post. Edit or delete it, then run ` + "`blogbuilder build`" + `.
`

// Scaffold writes a minimal site skeleton under sourceDir: a posts/
// directory with one sample post, templates for post pages and indexes, and
// a stylesheet asset. Existing files are only overwritten when force is set.
func Scaffold(sourceDir string, force bool) error {
	files := map[string]string{
		filepath.Join("templates", "default.html.tmpl"): scaffoldDefaultTemplate,
		filepath.Join("templates", "index.html.tmpl"):   scaffoldIndexTemplate,
		filepath.Join("assets", "style.css"):            scaffoldStylesheet,
		filepath.Join("posts", samplePostName()):        scaffoldPostBody,
	}

	for rel, content := range files {
		path := filepath.Join(sourceDir, rel)
		if !force {
			if _, err := os.Stat(path); err == nil {
				return errors.New(errors.KindOther, "refusing to overwrite existing file (use --force): "+path)
			}
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return errors.IO(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return errors.IO(err)
		}
		slog.Info("Wrote", "path", path)
	}
	return nil
}

// samplePostName dates the sample post today so the derived-date convention
// is visible immediately.
func samplePostName() string {
	return time.Now().UTC().Format("2006-01-02") + "-hello-world.md"
}
