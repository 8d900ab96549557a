// Package pricing computes proposal totals. All arithmetic is integer
// cents; the calculator performs no I/O and never fails, degrading to
// zero for anything missing or malformed.
package pricing

import (
	"math"

	"github.com/google/uuid"

	"setflow/internal/domain"
)

// Totals is the breakdown of a proposal's computed amounts.
// Subtotal may be negative when the discount exceeds the combined
// services and line items; it is never clamped.
type Totals struct {
	ServicesCents  domain.Cents `json:"services_cents"`
	LineItemsCents domain.Cents `json:"line_items_cents"`
	DiscountCents  domain.Cents `json:"discount_cents"`
	SubtotalCents  domain.Cents `json:"subtotal_cents"`
	TaxCents       domain.Cents `json:"tax_cents"`
	TotalCents     domain.Cents `json:"total_cents"`
}

// Calculate combines selected catalog services, ad-hoc line items, a
// manual discount and the organization's two tax rates into a total.
// Selected ids not present in services are skipped. The discount is a
// non-negative magnitude and is subtracted from the subtotal. Taxes
// apply only when a rate is nonzero; each tax amount is rounded to the
// nearest cent independently.
func Calculate(
	selectedServiceIDs []uuid.UUID,
	services []domain.CatalogService,
	lineItems []domain.LineItem,
	discountCents domain.Cents,
	cnpjRatePct, produtoraRatePct float64,
) Totals {
	rates := map[uuid.UUID]domain.Cents{}
	for _, s := range services {
		rates[s.ID] = s.RateCents
	}

	var servicesTotal domain.Cents
	for _, id := range selectedServiceIDs {
		servicesTotal += rates[id]
	}

	var lineItemsTotal domain.Cents
	for _, li := range lineItems {
		lineItemsTotal += li.ValueCents
	}

	if discountCents < 0 {
		discountCents = 0
	}

	subtotal := servicesTotal + lineItemsTotal - discountCents
	tax := taxAmount(subtotal, cnpjRatePct) + taxAmount(subtotal, produtoraRatePct)

	return Totals{
		ServicesCents:  servicesTotal,
		LineItemsCents: lineItemsTotal,
		DiscountCents:  discountCents,
		SubtotalCents:  subtotal,
		TaxCents:       tax,
		TotalCents:     subtotal + tax,
	}
}

func taxAmount(subtotal domain.Cents, ratePct float64) domain.Cents {
	if ratePct == 0 {
		return 0
	}
	return domain.Cents(math.Round(float64(subtotal) * ratePct / 100))
}
