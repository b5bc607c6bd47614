// Package render drives the template engine: it loads the named templates a
// site provides and renders render views into output sinks.
package render

import (
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// templateSuffix marks the files under <source>/templates that become named
// templates. The template name is the file base without the suffix.
const templateSuffix = ".html.tmpl"

// Engine holds the parsed template set for one build.
type Engine struct {
	root *template.Template
}

// Load parses every template file in dir into a shared template set, so
// templates can invoke each other by name.
func Load(dir string) (*Engine, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindIO, "read templates directory")
	}

	root := template.New("").Funcs(helperFuncs())
	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), templateSuffix) {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, errors.IO(err)
		}
		name := strings.TrimSuffix(entry.Name(), templateSuffix)
		// Lenient lookups: a missing optional variable renders as empty
		// output instead of aborting the page.
		if _, err := root.New(name).Option("missingkey=zero").Parse(string(raw)); err != nil {
			return nil, errors.Wrap(err, errors.KindTemplate, "parse template "+name)
		}
		count++
	}
	slog.Debug("Templates registered", "dir", dir, "count", count)
	return &Engine{root: root}, nil
}

// Render executes the named template with data into w.
func (e *Engine) Render(name string, data any, w io.Writer) error {
	t := e.root.Lookup(name)
	if t == nil {
		return errors.New(errors.KindTemplate, "template not found: "+name)
	}
	if err := t.Execute(w, data); err != nil {
		return errors.Wrap(err, errors.KindTemplate, "render template "+name)
	}
	return nil
}
