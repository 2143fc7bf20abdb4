// Package render wraps html/template behind a name-based rendering interface.
//
// Templates are added at startup; an Engine is read-only once serving begins
// and is then safe for concurrent use.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// UserTemplatePattern selects user templates inside a templates directory
const UserTemplatePattern = "**/*.html"

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateExists   = errors.New("template already defined")
)

// Engine renders named templates
type Engine interface {
	Render(name string, data any) (string, error)
	Has(name string) bool
}

// HTMLEngine is an Engine backed by one html/template set
type HTMLEngine struct {
	root *template.Template
}

// New creates an empty engine with the helper functions installed
func New() *HTMLEngine {
	root := template.New("").Funcs(template.FuncMap{
		"add":   func(a, b int) int { return a + b },
		"sub":   func(a, b int) int { return a - b },
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"json": func(v any) (string, error) {
			b, err := json.Marshal(v)
			return string(b), err
		},
	})
	return &HTMLEngine{root: root}
}

// Add parses text as the template called name
func (e *HTMLEngine) Add(name, text string) error {
	if e.Has(name) {
		return fmt.Errorf("%w: %s", ErrTemplateExists, name)
	}
	if _, err := e.root.New(name).Parse(text); err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return nil
}

// LoadFS adds every file of fsys matching pattern, named by its slash path
// relative to the root of fsys. It returns the names added.
func (e *HTMLEngine) LoadFS(fsys fs.FS, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to match templates %s: %w", pattern, err)
	}
	sort.Strings(matches)

	names := make([]string, 0, len(matches))
	for _, name := range matches {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", name, err)
		}
		name = path.Clean(name)
		if err := e.Add(name, string(content)); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, nil
}

// LoadDir adds all UserTemplatePattern files under dir
func (e *HTMLEngine) LoadDir(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open templates directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("templates path %s is not a directory", dir)
	}
	return e.LoadFS(os.DirFS(dir), UserTemplatePattern)
}

// Has reports whether a template called name is defined
func (e *HTMLEngine) Has(name string) bool {
	return e.root.Lookup(name) != nil
}

// Names lists the defined templates in sorted order
func (e *HTMLEngine) Names() []string {
	var names []string
	for _, t := range e.root.Templates() {
		if t.Name() != "" {
			names = append(names, t.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Render executes the named template with data
func (e *HTMLEngine) Render(name string, data any) (string, error) {
	tmpl := e.root.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}
