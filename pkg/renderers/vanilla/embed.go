package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const (
	formTemplate  = "templates/form"
	fieldTemplate = "templates/field"
)

// TemplatesFS exposes the embedded template bundle so callers can copy or
// extend the built-in markup.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
