package services

import (
	"github.com/moduquote/moduquote/internal/models"
)

// Period defaults serve two different purposes and are deliberately distinct:
// PricingFloorMonths is the safety floor applied when a rental line has no
// stored term (avoids a zero total), while RentalDefaultTermMonths is the UX
// default stamped onto newly created rental items (a common financing term).
const (
	PricingFloorMonths      = 1
	RentalDefaultTermMonths = 36
)

// PricingService computes line and grand totals for a quote. Amounts are
// whole currency units (int64); the same computation backs the editor
// preview, the persisted TotalAmount, and the public viewer.
type PricingService struct{}

func NewPricingService() *PricingService { return &PricingService{} }

// LineTotal computes the total for one item under the given quote type.
// RENTAL multiplies by the term in months with a floor of one month;
// PURCHASE ignores any stored term.
func (s *PricingService) LineTotal(item models.QuoteItem, typ models.QuoteType) int64 {
	total := item.UnitPrice * int64(item.Quantity)
	if typ == models.TypeRental {
		months := item.PeriodMonths
		if months < PricingFloorMonths {
			months = PricingFloorMonths
		}
		total *= int64(months)
	}
	return total
}

// GrandTotal sums line totals in sequence order. An empty sequence totals zero.
func (s *PricingService) GrandTotal(items []models.QuoteItem, typ models.QuoteType) int64 {
	var sum int64
	for _, it := range items {
		sum += s.LineTotal(it, typ)
	}
	return sum
}
