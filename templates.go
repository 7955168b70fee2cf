package regform

import (
	"io/fs"

	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in HTML templates
// (templates/form.tmpl and templates/field.tmpl) so callers can copy and
// override them with vanilla.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
