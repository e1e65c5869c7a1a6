// Package web provides the HTML handlers and templates for the Yatube site.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

//go:embed templates
var templatesFS embed.FS

// Templates holds one parsed template set per page.
// Every page is parsed together with the shared layout and partials.
type Templates struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("2 January 2006")
	},
	"mediaURL": func(rel string) string {
		return "/media/" + rel
	},
	// pageURL keeps the current path and swaps only the page number
	"pageURL": func(n int) string {
		return "?page=" + strconv.Itoa(n)
	},
	"linebreaks": func(s string) template.HTML {
		escaped := template.HTMLEscapeString(s)
		return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
	},
	"int64eq": func(a *int64, b int64) bool {
		return a != nil && *a == b
	},
}

// NewTemplates creates a new Templates instance by parsing all embedded templates.
func NewTemplates() (*Templates, error) {
	shared := []string{"templates/layout/*.html", "templates/partials/*.html"}

	pages, err := fs.Glob(templatesFS, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	t := &Templates{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		patterns := append(append([]string{}, shared...), page)
		tmpl, err := template.New(path.Base(page)).Funcs(templateFuncs).ParseFS(templatesFS, patterns...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		t.pages[path.Base(page)] = tmpl
	}
	return t, nil
}

// Render renders a named page with status 200.
func (t *Templates) Render(w http.ResponseWriter, name string, data interface{}) error {
	return t.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus renders a named page with the given status code.
// Output is buffered so a failing template never leaves a half-written page.
func (t *Templates) RenderStatus(w http.ResponseWriter, status int, name string, data interface{}) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("failed to execute template %q: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// ProjectStaticFileServer returns an http.Handler that serves static files from the project root.
func ProjectStaticFileServer(staticDir string) http.Handler {
	return dirServer("/static/", staticDir)
}

// MediaFileServer serves uploaded post images.
func MediaFileServer(mediaRoot string) http.Handler {
	return dirServer("/media/", mediaRoot)
}

func dirServer(prefix, dir string) http.Handler {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		panic(fmt.Sprintf("failed to get absolute path for %s: %v", dir, err))
	}
	return http.StripPrefix(prefix, http.FileServer(http.Dir(absPath)))
}
