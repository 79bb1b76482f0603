// Package web holds the portal's HTML templates.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var files embed.FS

// Templates parses the embedded templates. The entry point is "index.tmpl".
func Templates() (*template.Template, error) {
	return template.ParseFS(files, "templates/*.tmpl")
}
