package main

import (
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
)

// Renderer holds every template in a directory, parsed once at startup
// and looked up by file name.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer(dir string) (*Renderer, error) {
	tmpl, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(name string, context map[string]any) (string, error) {
	var b strings.Builder
	if err := r.tmpl.ExecuteTemplate(&b, name, context); err != nil {
		return "", err
	}
	return b.String(), nil
}
