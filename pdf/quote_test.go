package pdf

import (
	"bytes"
	"testing"

	"github.com/moduquote/moduquote/internal/models"
	"github.com/moduquote/moduquote/internal/render"
	"github.com/moduquote/moduquote/internal/services"
)

func TestQuotePDFProducesDocument(t *testing.T) {
	items := []models.QuoteItem{
		{ID: "a", Name: "서비 플러스", UnitPrice: 600000, Quantity: 1, PeriodMonths: 36, Specs: []string{"서빙로봇", "535x550x1095mm"}},
	}
	in := render.NewInput(items, models.TypeRental, services.NewPricingService())
	in.Title = "2025-11-20"
	in.RecipientName = "베어로보틱스"
	in.TeamName = "ModuQuote"

	for _, tag := range render.Templates() {
		out, err := QuotePDF(tag, in)
		if err != nil {
			t.Fatalf("%s: %v", tag, err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF")) {
			t.Fatalf("%s: output is not a PDF", tag)
		}
	}
}

func TestQuotePDFUnknownTemplate(t *testing.T) {
	in := render.NewInput(nil, models.TypePurchase, services.NewPricingService())
	out, err := QuotePDF("no-such-layout", in)
	if err != nil {
		t.Fatalf("fallback failed: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("empty document")
	}
}

func TestFilename(t *testing.T) {
	cases := []struct {
		recipient string
		want      string
	}{
		{"베어로보틱스", "견적서_베어로보틱스.pdf"},
		{"", "견적서_Draft.pdf"},
		{"   ", "견적서_Draft.pdf"},
		{`a/b:c*d`, "견적서_a_b_c_d.pdf"},
		{"Bear Robotics", "견적서_Bear Robotics.pdf"},
	}
	for _, tc := range cases {
		if got := Filename(tc.recipient); got != tc.want {
			t.Fatalf("Filename(%q)=%q want %q", tc.recipient, got, tc.want)
		}
	}
}
