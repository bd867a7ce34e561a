package models

import "time"

// Quote types. RENTAL applies a monthly term multiplier to each line.
type QuoteType string

const (
	TypePurchase QuoteType = "PURCHASE"
	TypeRental   QuoteType = "RENTAL"
)

// Quote lifecycle. DRAFT -> SENT is one-way and stamps SentAt exactly once;
// SENT -> ACCEPTED is one-way. There is no deletion path.
type QuoteStatus string

const (
	StatusDraft    QuoteStatus = "DRAFT"
	StatusSent     QuoteStatus = "SENT"
	StatusAccepted QuoteStatus = "ACCEPTED"
)

// Layout template tags. Unknown tags render as TemplateStandard.
const (
	TemplateStandard = "standard"
	TemplateModern   = "modern"
	TemplateSimple   = "simple"
)

// Quote is the persisted document record. Items are stored as a JSON blob in
// Content; TotalAmount is derived from the pricing engine at commit time and
// is never independently authoritative.
type Quote struct {
	ID               uint    `gorm:"primaryKey"`
	ProjectID        uint    `gorm:"not null;index"`
	Project          Project `gorm:"foreignKey:ProjectID"`
	Title            string  `gorm:"not null"`
	Type             QuoteType   `gorm:"not null;default:'PURCHASE'"`
	Template         string      `gorm:"not null;default:'standard'"`
	Status           QuoteStatus `gorm:"not null;default:'DRAFT'"`
	Content          string      // JSON-encoded ordered item sequence
	TotalAmount      int64
	RecipientName    string
	RecipientContact string
	RecipientEmail   string
	SentAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Items decodes the stored content blob.
func (q *Quote) Items() ([]QuoteItem, error) {
	return DecodeItems(q.Content)
}
