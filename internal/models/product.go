package models

import (
	"strings"
	"time"
)

// specDelimiter joins spec entries into the stored string form. The parse is
// the exact inverse so library round-trips keep spec ordering.
const specDelimiter = ", "

// CatalogProduct is a team-scoped reusable item definition. Created by an
// explicit "save to library" action from a quote item; imported by copying its
// fields into a fresh QuoteItem.
type CatalogProduct struct {
	ID        uint   `gorm:"primaryKey"`
	TeamID    uint   `gorm:"not null;index"`
	Team      Team   `gorm:"foreignKey:TeamID"`
	Name      string `gorm:"not null"`
	UnitPrice int64  `gorm:"not null"`
	Specs     string // delimited spec list
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SpecList parses the delimited spec string into the ordered sequence.
func (p *CatalogProduct) SpecList() []string {
	return ParseSpecs(p.Specs)
}

// ParseSpecs splits a delimited spec string, dropping empty entries.
func ParseSpecs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, specDelimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JoinSpecs renders an ordered spec sequence into the stored string form.
func JoinSpecs(specs []string) string {
	return strings.Join(specs, specDelimiter)
}
