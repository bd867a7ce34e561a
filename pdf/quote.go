// Package pdf turns a rendered quote page tree into a downloadable document.
package pdf

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"

	"github.com/moduquote/moduquote/internal/render"
)

// QuotePDF renders the quote with the template identified by tag and lays the
// resulting rows out on a single A4 portrait page. Unknown tags fall back to
// the standard layout.
func QuotePDF(tag string, in render.Input) ([]byte, error) {
	rows, err := render.Resolve(tag).Render(in)
	if err != nil {
		return nil, fmt.Errorf("render quote: %w", err)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithRightMargin(12).
		WithTopMargin(12).
		WithBottomMargin(12).
		Build()

	m := maroto.New(cfg)
	m.AddRows(rows...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// Filename builds the download name for a quote addressed to recipient.
// Quotes without a recipient download as a draft.
func Filename(recipient string) string {
	name := strings.TrimSpace(recipient)
	if name == "" {
		name = "Draft"
	}
	name = sanitize(name)
	return "견적서_" + name + ".pdf"
}

// sanitize strips characters that are unsafe in filenames and in the
// Content-Disposition header.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', '\n', '\r', ';':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
