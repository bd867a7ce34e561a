package services

import (
	"testing"

	"github.com/moduquote/moduquote/internal/models"
)

func TestLineTotalPurchaseIgnoresPeriod(t *testing.T) {
	svc := NewPricingService()
	item := models.QuoteItem{UnitPrice: 600000, Quantity: 1, PeriodMonths: 36}
	if got := svc.LineTotal(item, models.TypePurchase); got != 600000 {
		t.Fatalf("expected 600000 got %d", got)
	}
}

func TestLineTotalRental(t *testing.T) {
	svc := NewPricingService()
	item := models.QuoteItem{UnitPrice: 600000, Quantity: 1, PeriodMonths: 36}
	if got := svc.LineTotal(item, models.TypeRental); got != 21600000 {
		t.Fatalf("expected 21600000 got %d", got)
	}
}

func TestLineTotalRentalMissingPeriodFloorsToOne(t *testing.T) {
	svc := NewPricingService()
	item := models.QuoteItem{UnitPrice: 100, Quantity: 2}
	if got := svc.LineTotal(item, models.TypeRental); got != 200 {
		t.Fatalf("expected 200 got %d", got)
	}
}

func TestGrandTotalEmptyIsZero(t *testing.T) {
	svc := NewPricingService()
	if got := svc.GrandTotal(nil, models.TypeRental); got != 0 {
		t.Fatalf("expected 0 got %d", got)
	}
}

func TestGrandTotalOrderIndependent(t *testing.T) {
	svc := NewPricingService()
	a := models.QuoteItem{UnitPrice: 150, Quantity: 3, PeriodMonths: 2}
	b := models.QuoteItem{UnitPrice: 999, Quantity: 1}
	c := models.QuoteItem{UnitPrice: 40, Quantity: 7, PeriodMonths: 12}
	fwd := svc.GrandTotal([]models.QuoteItem{a, b, c}, models.TypeRental)
	rev := svc.GrandTotal([]models.QuoteItem{c, b, a}, models.TypeRental)
	if fwd != rev {
		t.Fatalf("reordering changed grand total: %d vs %d", fwd, rev)
	}
	want := svc.LineTotal(a, models.TypeRental) + svc.LineTotal(b, models.TypeRental) + svc.LineTotal(c, models.TypeRental)
	if fwd != want {
		t.Fatalf("expected %d got %d", want, fwd)
	}
}
