package models

import (
	"encoding/json"
	"fmt"
)

// QuoteItem is one purchasable/rentable line of a quote. It is a value type,
// not a table: the ordered sequence is serialized into Quote.Content. The JSON
// field names are part of the persisted format and must stay stable.
type QuoteItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	UnitPrice    int64    `json:"price"`
	Quantity     int      `json:"qty"`
	PeriodMonths int      `json:"period,omitempty"` // rental term; meaningful only for RENTAL quotes
	Specs        []string `json:"specs"`
	ImageRef     string   `json:"image,omitempty"` // data URL or hosted URL
}

// EncodeItems serializes an ordered item sequence. The encoding round-trips
// exactly: DecodeItems(EncodeItems(items)) preserves every field, the sequence
// order, spec order, and image reference presence.
func EncodeItems(items []QuoteItem) (string, error) {
	if items == nil {
		items = []QuoteItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode items: %w", err)
	}
	return string(b), nil
}

// DecodeItems parses a stored content blob. An empty blob decodes to an empty
// sequence (a zero-item quote is valid).
func DecodeItems(content string) ([]QuoteItem, error) {
	if content == "" {
		return []QuoteItem{}, nil
	}
	var items []QuoteItem
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if items == nil {
		items = []QuoteItem{}
	}
	return items, nil
}
