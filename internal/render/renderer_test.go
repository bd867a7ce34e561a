package render

import (
	"testing"

	"github.com/moduquote/moduquote/internal/models"
	"github.com/moduquote/moduquote/internal/services"
)

func sampleInput(typ models.QuoteType, items []models.QuoteItem) Input {
	in := NewInput(items, typ, services.NewPricingService())
	in.Title = "2025-11-20"
	in.RecipientName = "베어로보틱스"
	in.RecipientContact = "담당자 귀하"
	in.TeamName = "ModuQuote"
	in.ManagerName = "김민수"
	in.ManagerEmail = "minsu@moduquote.io"
	in.Number = "MQ-0001"
	return in
}

func TestResolveFallsBackToStandard(t *testing.T) {
	std := Resolve(models.TemplateStandard)
	if std == nil || std.Name() != models.TemplateStandard {
		t.Fatalf("standard renderer not registered")
	}
	if got := Resolve("holographic"); got != std {
		t.Fatalf("unknown tag should resolve to standard, got %q", got.Name())
	}
	if got := Resolve(""); got != std {
		t.Fatalf("empty tag should resolve to standard, got %q", got.Name())
	}
}

func TestResolveKnownTags(t *testing.T) {
	for _, tag := range Templates() {
		r := Resolve(tag)
		if r.Name() != tag {
			t.Fatalf("tag %q resolved to %q", tag, r.Name())
		}
	}
}

func TestAllVariantsRenderEmptyQuote(t *testing.T) {
	in := sampleInput(models.TypePurchase, nil)
	if in.GrandTotal != 0 {
		t.Fatalf("empty quote should total 0, got %d", in.GrandTotal)
	}
	for _, tag := range Templates() {
		rows, err := Resolve(tag).Render(in)
		if err != nil {
			t.Fatalf("%s: render failed: %v", tag, err)
		}
		if len(rows) == 0 {
			t.Fatalf("%s: expected a non-empty page tree", tag)
		}
	}
}

func TestUnknownTemplateRendersSameTreeAsStandard(t *testing.T) {
	in := sampleInput(models.TypeRental, []models.QuoteItem{
		{ID: "a", Name: "서비 플러스", UnitPrice: 600000, Quantity: 1, PeriodMonths: 36, Specs: []string{"535x550x1095mm"}},
	})
	std, err := Resolve(models.TemplateStandard).Render(in)
	if err != nil {
		t.Fatalf("standard render: %v", err)
	}
	unk, err := Resolve("does-not-exist").Render(in)
	if err != nil {
		t.Fatalf("fallback render: %v", err)
	}
	if len(std) != len(unk) {
		t.Fatalf("fallback page tree differs: %d vs %d rows", len(std), len(unk))
	}
}

func TestSimplePadsToFixedRowCount(t *testing.T) {
	one := sampleInput(models.TypeRental, []models.QuoteItem{
		{ID: "a", Name: "A", UnitPrice: 100, Quantity: 1, PeriodMonths: 12},
	})
	five := sampleInput(models.TypeRental, []models.QuoteItem{
		{ID: "a", Name: "A", UnitPrice: 100, Quantity: 1, PeriodMonths: 12},
		{ID: "b", Name: "B", UnitPrice: 200, Quantity: 2, PeriodMonths: 12},
		{ID: "c", Name: "C", UnitPrice: 300, Quantity: 1, PeriodMonths: 24},
		{ID: "d", Name: "D", UnitPrice: 400, Quantity: 1, PeriodMonths: 36},
		{ID: "e", Name: "E", UnitPrice: 500, Quantity: 3, PeriodMonths: 12},
	})
	r := Resolve(models.TemplateSimple)
	rowsOne, err := r.Render(one)
	if err != nil {
		t.Fatalf("render one: %v", err)
	}
	rowsFive, err := r.Render(five)
	if err != nil {
		t.Fatalf("render five: %v", err)
	}
	// Below the fixed form size the filler keeps the table height constant.
	if len(rowsOne) != len(rowsFive) {
		t.Fatalf("ledger should pad to a fixed size: %d vs %d rows", len(rowsOne), len(rowsFive))
	}
}

func TestNewInputFreezesPricing(t *testing.T) {
	items := []models.QuoteItem{
		{ID: "a", UnitPrice: 600000, Quantity: 1, PeriodMonths: 36},
		{ID: "b", UnitPrice: 100, Quantity: 2},
	}
	in := NewInput(items, models.TypeRental, services.NewPricingService())
	if len(in.Lines) != 2 {
		t.Fatalf("expected 2 lines got %d", len(in.Lines))
	}
	if in.Lines[0].Total != 21600000 {
		t.Fatalf("line 0 total: %d", in.Lines[0].Total)
	}
	if in.Lines[1].Total != 200 {
		t.Fatalf("line 1 total: %d", in.Lines[1].Total)
	}
	if in.GrandTotal != 21600200 {
		t.Fatalf("grand total: %d", in.GrandTotal)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		600000:   "600,000",
		21600000: "21,600,000",
		-4500:    "-4,500",
		999:      "999",
	}
	for n, want := range cases {
		if got := FormatAmount(n); got != want {
			t.Fatalf("FormatAmount(%d)=%q want %q", n, got, want)
		}
	}
}

func TestDecodeDataURL(t *testing.T) {
	if _, _, ok := decodeDataURL("https://cdn.example.com/x.png"); ok {
		t.Fatalf("external URL must not decode")
	}
	if _, _, ok := decodeDataURL("data:image/png;base64,%%%"); ok {
		t.Fatalf("invalid base64 must not decode")
	}
	data, ext, ok := decodeDataURL("data:image/png;base64,aGVsbG8=")
	if !ok || string(data) != "hello" || ext != "png" {
		t.Fatalf("expected decoded png payload, got ok=%v data=%q ext=%q", ok, data, ext)
	}
}
