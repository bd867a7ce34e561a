package render

import (
	"time"

	"github.com/moduquote/moduquote/i18n"
	"github.com/moduquote/moduquote/internal/models"
	"github.com/moduquote/moduquote/internal/services"
)

// Line pairs an item with its pricing-engine total. Renderers format these
// values verbatim and never recompute them, so the editor preview, the PDF
// export, and the public viewer always show the same numbers.
type Line struct {
	Item  models.QuoteItem
	Total int64
}

// Input is the single shape every layout variant consumes.
type Input struct {
	Title            string
	Type             models.QuoteType
	Lines            []Line
	GrandTotal       int64
	RecipientName    string
	RecipientContact string
	TeamName         string
	TeamLogoURL      string
	ManagerName      string
	ManagerEmail     string
	Number           string // display number (simple layout)
	Lang             string
	IssuedAt         time.Time
}

// NewInput computes line totals and the grand total once, up front, through
// the pricing service and freezes them into the render input.
func NewInput(items []models.QuoteItem, typ models.QuoteType, pricing *services.PricingService) Input {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{Item: it, Total: pricing.LineTotal(it, typ)})
	}
	return Input{
		Type:       typ,
		Lines:      lines,
		GrandTotal: pricing.GrandTotal(items, typ),
		Lang:       i18n.DefaultLang,
		IssuedAt:   time.Now(),
	}
}

func (in Input) t(code string) string {
	lang := in.Lang
	if lang == "" {
		lang = i18n.DefaultLang
	}
	return i18n.T(lang, code)
}
