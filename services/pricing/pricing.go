package pricing

import (
    "scholarly-checkout-api/models"
)

// Annual billing is twelve months at a fixed 20% discount.
const annualDiscount = 0.20

// Quote is the full price breakdown for one wizard state. All values keep
// full float precision; callers round at the response boundary.
type Quote struct {
    BasePrice     float64 `json:"base_price"`
    AddOnsTotal   float64 `json:"addons_total"`
    Subtotal      float64 `json:"subtotal"`
    PromoDiscount float64 `json:"promo_discount"`
    Total         float64 `json:"total"`
    AnnualSavings float64 `json:"annual_savings"`
    PromoSavings  float64 `json:"promo_savings"`
    TotalSavings  float64 `json:"total_savings"`
}

// BasePrice returns the plan price for the billing cycle.
func BasePrice(monthlyPrice float64, cycle models.BillingCycle) float64 {
    if cycle == models.BillingAnnual {
        return monthlyPrice * 12 * (1 - annualDiscount)
    }
    return monthlyPrice
}

// AddOnsTotal sums unit price times quantity over all add-ons.
func AddOnsTotal(addOns []models.AddOn) float64 {
    var total float64
    for _, a := range addOns {
        if a.Quantity > 0 {
            total += a.UnitPrice * float64(a.Quantity)
        }
    }
    return total
}

// Calculate produces the quote for a plan, billing cycle, add-on selection
// and promo discount fraction (0 when no promo is applied). Pure function:
// no clock, no network, no mutation of its inputs.
func Calculate(monthlyPrice float64, cycle models.BillingCycle, addOns []models.AddOn, discount float64) Quote {
    q := Quote{
        BasePrice:   BasePrice(monthlyPrice, cycle),
        AddOnsTotal: AddOnsTotal(addOns),
    }
    q.Subtotal = q.BasePrice + q.AddOnsTotal

    if discount > 0 {
        q.PromoDiscount = q.Subtotal * discount
        q.PromoSavings = q.PromoDiscount
    }
    q.Total = q.Subtotal - q.PromoDiscount

    if cycle == models.BillingAnnual {
        q.AnnualSavings = monthlyPrice * 12 * annualDiscount
    }
    q.TotalSavings = q.AnnualSavings + q.PromoSavings

    return q
}

// DiscountFraction converts a whole-number percent from the promo endpoint
// into the fraction Calculate expects.
func DiscountFraction(percent int) float64 {
    return float64(percent) / 100
}
