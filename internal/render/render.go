// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the embedded templates and renders storefront and
// admin pages.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/textura/internal/middleware"
	"github.com/olegiv/textura/internal/seo"
	"github.com/olegiv/textura/internal/site"
)

// blankLinesRegex matches runs of blank lines left behind by template actions.
var blankLinesRegex = regexp.MustCompile(`(\r?\n[ \t]*)+\r?\n`)

// Template groups and the layouts they are parsed with.
var groups = []struct {
	dir     string
	layouts []string
}{
	{"site", []string{"layouts/base.html", "layouts/site.html"}},
	{"admin", []string{"layouts/base.html", "layouts/admin.html"}},
	{"auth", []string{"layouts/base.html"}},
}

// Renderer handles template rendering with caching.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	logger         *slog.Logger
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	Logger         *slog.Logger
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		logger:         cfg.Logger,
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	for _, g := range groups {
		pages, err := templateFiles(templatesFS, g.dir)
		if err != nil {
			return fmt.Errorf("getting %s templates: %w", g.dir, err)
		}
		for _, page := range pages {
			name := g.dir + "/" + strings.TrimSuffix(path.Base(page), ".html")

			files := append([]string{}, g.layouts...)
			files = append(files, partials...)
			files = append(files, page)

			tmpl, err := template.New("").Funcs(Funcs()).ParseFS(templatesFS, files...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}
			r.templates[name] = tmpl
		}
	}
	return nil
}

// templateFiles returns all .html files in a directory. A missing directory
// yields no files.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		return nil, nil
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// Has reports whether a template is registered under name.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// AdminUser identifies the signed-in admin in the admin layout.
type AdminUser struct {
	Email string
	Name  string
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Meta        seo.Meta
	JSONLD      template.JS
	Site        site.View
	Data        any
	Flash       string
	FlashType   string
	CurrentPath string
	Admin       *AdminUser
}

// Flash stores a one-shot message shown by the next rendered page.
func (r *Renderer) Flash(req *http.Request, kind, message string) {
	if r.sessionManager == nil {
		return
	}
	r.sessionManager.Put(req.Context(), middleware.SessionKeyFlash, message)
	r.sessionManager.Put(req.Context(), middleware.SessionKeyFlashType, kind)
}

// Render renders a template with the given status.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentPath = req.URL.Path
	if r.sessionManager != nil && data.Flash == "" {
		if flash := r.sessionManager.PopString(req.Context(), middleware.SessionKeyFlash); flash != "" {
			data.Flash = flash
			data.FlashType = r.sessionManager.PopString(req.Context(), middleware.SessionKeyFlashType)
		}
	}
	if data.Flash != "" && data.FlashType == "" {
		data.FlashType = "info"
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write(compact(buf.Bytes()))
	return err
}

// compact drops blank lines unless the page holds whitespace-sensitive
// elements.
func compact(b []byte) []byte {
	if bytes.Contains(b, []byte("<textarea")) || bytes.Contains(b, []byte("<pre")) {
		return b
	}
	return blankLinesRegex.ReplaceAll(b, []byte("\n"))
}

// Page renders name with status 200 and logs failures as 500s.
func (r *Renderer) Page(w http.ResponseWriter, req *http.Request, name string, data TemplateData) {
	r.Status(w, req, http.StatusOK, name, data)
}

// Status renders name with status and falls back to a plain 500 on error.
func (r *Renderer) Status(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) {
	if err := r.Render(w, req, status, name, data); err != nil {
		r.logger.ErrorContext(req.Context(), "template render failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
