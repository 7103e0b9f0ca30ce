// Package web carries the embedded HTML templates for the rendered views.
package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/jonesrussell/problem-finder/internal/metadata"
)

//go:embed templates
var templateFS embed.FS

// Templates parses the embedded view templates. Snippets pass through the
// metadata cleaner on the way into the page.
func Templates() (*template.Template, error) {
	funcs := template.FuncMap{
		"snippet": func(raw string) string {
			return metadata.CleanSnippet(raw, metadata.DefaultSnippetLength)
		},
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}
