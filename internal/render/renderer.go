// Package render maps a quote document plus precomputed totals into a fixed
// page layout. The three layout variants are interchangeable behind the
// Renderer interface and are selected by template tag through a registry;
// unknown tags fall back to the standard layout.
package render

import (
	"github.com/johnfercher/maroto/v2/pkg/core"

	"github.com/moduquote/moduquote/internal/models"
)

// Renderer produces the page tree for one layout variant. The returned rows
// are the captureable surface the export pipeline turns into a file; the
// renderer itself performs no I/O and never fails for a well-formed input.
type Renderer interface {
	Name() string
	Render(in Input) ([]core.Row, error)
}

var registry = map[string]Renderer{}

func register(r Renderer) { registry[r.Name()] = r }

func init() {
	register(&standardRenderer{})
	register(&modernRenderer{})
	register(&simpleRenderer{})
}

// Resolve returns the renderer for a template tag, falling back to the
// standard layout for unknown tags.
func Resolve(tag string) Renderer {
	if r, ok := registry[tag]; ok {
		return r
	}
	return registry[models.TemplateStandard]
}

// Templates lists the registered tags (for validation and UI pickers).
func Templates() []string {
	return []string{models.TemplateStandard, models.TemplateModern, models.TemplateSimple}
}
