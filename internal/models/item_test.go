package models

import (
	"reflect"
	"testing"
)

func TestItemsRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		items []QuoteItem
	}{
		{"empty", []QuoteItem{}},
		{"single", []QuoteItem{
			{ID: "a1", Name: "서비 플러스", UnitPrice: 600000, Quantity: 1, PeriodMonths: 36, Specs: []string{"535x550x1095mm", "4단 가변 선반"}, ImageRef: "https://cdn.example.com/servi-plus.png"},
		}},
		{"multi no image", []QuoteItem{
			{ID: "a1", Name: "A", UnitPrice: 100, Quantity: 2, Specs: []string{"x"}},
			{ID: "b2", Name: "B", UnitPrice: 200, Quantity: 1, PeriodMonths: 12, Specs: []string{}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			blob, err := EncodeItems(tc.items)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := DecodeItems(blob)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !reflect.DeepEqual(got, tc.items) {
				t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, tc.items)
			}
		})
	}
}

func TestDecodeItemsEmptyBlob(t *testing.T) {
	items, err := DecodeItems("")
	if err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty sequence got %d", len(items))
	}
}

func TestEncodeItemsNilIsEmptySequence(t *testing.T) {
	blob, err := EncodeItems(nil)
	if err != nil {
		t.Fatalf("encode nil: %v", err)
	}
	if blob != "[]" {
		t.Fatalf("expected [] got %s", blob)
	}
}

func TestSpecsJoinParse(t *testing.T) {
	specs := []string{"535x550x1095mm", "4단 가변 선반", "25kg"}
	joined := JoinSpecs(specs)
	if got := ParseSpecs(joined); !reflect.DeepEqual(got, specs) {
		t.Fatalf("parse(join) mismatch: %#v", got)
	}
	if got := ParseSpecs(""); len(got) != 0 {
		t.Fatalf("expected empty specs got %#v", got)
	}
	if got := ParseSpecs("  "); len(got) != 0 {
		t.Fatalf("expected empty specs for blank got %#v", got)
	}
}
