package pricing

import (
    "testing"

    "github.com/stretchr/testify/assert"

    "scholarly-checkout-api/models"
)

func TestBasePriceMonthly(t *testing.T) {
    assert.Equal(t, 49.0, BasePrice(49, models.BillingMonthly))
}

func TestBasePriceAnnualApplies20Percent(t *testing.T) {
    // 49 * 12 = 588, minus 20% = 470.40
    assert.InDelta(t, 470.40, BasePrice(49, models.BillingAnnual), 0.001)
}

func TestAddOnsTotal(t *testing.T) {
    addOns := []models.AddOn{
        {ID: "teacher", UnitPrice: 5.00, Quantity: 3},
        {ID: "student", UnitPrice: 1.50, Quantity: 10},
        {ID: "storage", UnitPrice: 4.00, Quantity: 0},
    }
    assert.InDelta(t, 30.0, AddOnsTotal(addOns), 0.001)
}

func TestCalculateMonthlyNoPromo(t *testing.T) {
    q := Calculate(49, models.BillingMonthly, nil, 0)

    assert.Equal(t, 49.0, q.BasePrice)
    assert.Equal(t, 0.0, q.AddOnsTotal)
    assert.Equal(t, 49.0, q.Subtotal)
    assert.Equal(t, 0.0, q.PromoDiscount)
    assert.Equal(t, 49.0, q.Total)
    assert.Equal(t, 0.0, q.AnnualSavings)
    assert.Equal(t, 0.0, q.TotalSavings)
}

func TestCalculateAnnualWithAddOnsAndPromo(t *testing.T) {
    addOns := []models.AddOn{
        {ID: "admin", UnitPrice: 8.00, Quantity: 2},
    }

    q := Calculate(49, models.BillingAnnual, addOns, DiscountFraction(10))

    // base 470.40 + addons 16.00 = 486.40
    assert.InDelta(t, 470.40, q.BasePrice, 0.001)
    assert.InDelta(t, 16.00, q.AddOnsTotal, 0.001)
    assert.InDelta(t, 486.40, q.Subtotal, 0.001)
    // 10% of subtotal
    assert.InDelta(t, 48.64, q.PromoDiscount, 0.001)
    assert.InDelta(t, 437.76, q.Total, 0.001)
    // annual savings are always off the undiscounted yearly price
    assert.InDelta(t, 117.60, q.AnnualSavings, 0.001)
    assert.InDelta(t, 48.64, q.PromoSavings, 0.001)
    assert.InDelta(t, 166.24, q.TotalSavings, 0.001)
}

func TestCalculateDoesNotMutateAddOns(t *testing.T) {
    addOns := []models.AddOn{
        {ID: "teacher", UnitPrice: 5.00, Quantity: 4},
    }

    Calculate(49, models.BillingMonthly, addOns, 0.25)

    assert.Equal(t, 4, addOns[0].Quantity)
    assert.Equal(t, 5.00, addOns[0].UnitPrice)
}

func TestDiscountFraction(t *testing.T) {
    assert.Equal(t, 0.10, DiscountFraction(10))
    assert.Equal(t, 0.0, DiscountFraction(0))
    assert.Equal(t, 1.0, DiscountFraction(100))
}
