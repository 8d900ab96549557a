package pricing_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"setflow/internal/domain"
	"setflow/internal/pricing"
)

func catalog(rates ...domain.Cents) ([]domain.CatalogService, []uuid.UUID) {
	services := make([]domain.CatalogService, len(rates))
	ids := make([]uuid.UUID, len(rates))
	for i, r := range rates {
		id := uuid.New()
		services[i] = domain.CatalogService{ID: id, RateCents: r}
		ids[i] = id
	}
	return services, ids
}

func TestCalculate_NoDiscountNoTax(t *testing.T) {
	services, ids := catalog(100000, 50000)
	items := []domain.LineItem{
		{Label: "Drone rental", ValueCents: 30000},
		{Label: "Color grading", ValueCents: 20000},
	}

	totals := pricing.Calculate(ids, services, items, 0, 0, 0)

	assert.Equal(t, domain.Cents(150000), totals.ServicesCents)
	assert.Equal(t, domain.Cents(50000), totals.LineItemsCents)
	assert.Equal(t, domain.Cents(200000), totals.SubtotalCents)
	assert.Equal(t, domain.Cents(0), totals.TaxCents)
	assert.Equal(t, totals.SubtotalCents, totals.TotalCents)
}

func TestCalculate_NegativeLineItemsAreCredits(t *testing.T) {
	services, ids := catalog(150000)
	items := []domain.LineItem{{Label: "Returning client credit", ValueCents: -20000}}

	totals := pricing.Calculate(ids, services, items, 5000, 0, 0)

	assert.Equal(t, domain.Cents(125000), totals.SubtotalCents)
	assert.Equal(t, domain.Cents(125000), totals.TotalCents)
}

func TestCalculate_DiscountExceedingTotalsGoesNegative(t *testing.T) {
	services, ids := catalog(10000)

	totals := pricing.Calculate(ids, services, nil, 15000, 0, 0)

	assert.Equal(t, domain.Cents(-5000), totals.SubtotalCents)
	assert.Equal(t, domain.Cents(-5000), totals.TotalCents)
}

func TestCalculate_TaxesAppliedPerRate(t *testing.T) {
	services, ids := catalog(100000)

	totals := pricing.Calculate(ids, services, nil, 0, 10, 5)

	assert.Equal(t, domain.Cents(100000), totals.SubtotalCents)
	assert.Equal(t, domain.Cents(15000), totals.TaxCents)
	assert.Equal(t, domain.Cents(115000), totals.TotalCents)
}

func TestCalculate_TaxRoundedPerRate(t *testing.T) {
	services, ids := catalog(333)

	// 333 * 7.5% = 24.975 -> 25; single rate, rounded once.
	totals := pricing.Calculate(ids, services, nil, 0, 7.5, 0)

	assert.Equal(t, domain.Cents(25), totals.TaxCents)
	assert.Equal(t, domain.Cents(358), totals.TotalCents)
}

func TestCalculate_ZeroRatesMeanNoTax(t *testing.T) {
	services, ids := catalog(99999)

	totals := pricing.Calculate(ids, services, nil, 0, 0, 0)

	assert.Equal(t, totals.SubtotalCents, totals.TotalCents)
	assert.Equal(t, domain.Cents(0), totals.TaxCents)
}

func TestCalculate_UnknownServiceIDsSkipped(t *testing.T) {
	services, ids := catalog(40000)
	withUnknown := append([]uuid.UUID{uuid.New()}, ids...)

	totals := pricing.Calculate(withUnknown, services, nil, 0, 0, 0)

	assert.Equal(t, domain.Cents(40000), totals.ServicesCents)
}

func TestCalculate_NegativeDiscountTreatedAsZero(t *testing.T) {
	services, ids := catalog(10000)

	totals := pricing.Calculate(ids, services, nil, -500, 0, 0)

	assert.Equal(t, domain.Cents(10000), totals.SubtotalCents)
	assert.Equal(t, domain.Cents(0), totals.DiscountCents)
}

func TestCalculate_EmptyInputs(t *testing.T) {
	totals := pricing.Calculate(nil, nil, nil, 0, 0, 0)

	assert.Equal(t, domain.Cents(0), totals.SubtotalCents)
	assert.Equal(t, domain.Cents(0), totals.TotalCents)
}

func TestCalculate_EndToEndScenario(t *testing.T) {
	// Services total 1500.00, one credit of -200.00, discount parsed
	// from "50.00", no taxes configured.
	services, ids := catalog(150000)
	items := []domain.LineItem{{Label: "Credit", ValueCents: -20000}}
	discount := domain.ParseAmount("50.00")

	totals := pricing.Calculate(ids, services, items, discount, 0, 0)

	assert.Equal(t, domain.Cents(125000), totals.SubtotalCents)
	assert.Equal(t, domain.Cents(125000), totals.TotalCents)
}
