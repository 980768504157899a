package templates

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses every page template.
func Load() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"number": func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"score":  func(v float64) string { return fmt.Sprintf("%.3f", v) },
	}).ParseFS(files, "*.html")
}
