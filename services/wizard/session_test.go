package wizard

import (
    "testing"

    "github.com/stretchr/testify/assert"

    "scholarly-checkout-api/models"
    "scholarly-checkout-api/services/verification"
)

func TestNewSessionDefaults(t *testing.T) {
    sess := NewSession(testNow)

    assert.NotEmpty(t, sess.ID)
    assert.Equal(t, FirstStep, sess.CurrentStep)
    assert.Equal(t, models.BillingMonthly, sess.BillingCycle)
    assert.Equal(t, verification.StatusNotStarted, sess.Verification.Status)
    assert.NotEmpty(t, sess.AddOns)
    for _, a := range sess.AddOns {
        assert.Zero(t, a.Quantity, "add-on %s should start unselected", a.ID)
    }
}

func TestSetAddOnQuantityClamps(t *testing.T) {
    sess := NewSession(testNow)

    sess.SetAddOnQuantity("teacher", 3)
    sess.SetAddOnQuantity("student", -4)
    sess.SetAddOnQuantity("admin", 9999)
    sess.SetAddOnQuantity("no_such_addon", 5)

    byID := make(map[string]models.AddOn)
    for _, a := range sess.AddOns {
        byID[a.ID] = a
    }

    assert.Equal(t, 3, byID["teacher"].Quantity)
    assert.Equal(t, 0, byID["student"].Quantity)
    assert.Equal(t, byID["admin"].MaxQuantity, byID["admin"].Quantity)
}

func TestSelectedAddOns(t *testing.T) {
    sess := NewSession(testNow)
    sess.SetAddOnQuantity("teacher", 2)
    sess.SetAddOnQuantity("storage", 1)

    selected := sess.SelectedAddOns()

    assert.Len(t, selected, 2)
    for _, a := range selected {
        assert.Greater(t, a.Quantity, 0)
    }
}

func TestClearPromo(t *testing.T) {
    sess := NewSession(testNow)
    sess.PromoCode = "EDU25"
    sess.PromoApplied = true
    sess.Discount = 25

    sess.ClearPromo()

    assert.Empty(t, sess.PromoCode)
    assert.False(t, sess.PromoApplied)
    assert.Zero(t, sess.Discount)
}

func TestBuildOrderCarriesAppliedPromo(t *testing.T) {
    c := NewController(nil, nil)

    sess := NewSession(testNow)
    sess.Account = validAccount()
    sess.PlanID = "plan-standard"
    sess.BillingCycle = models.BillingAnnual
    sess.SetAddOnQuantity("teacher", 2)
    sess.PromoCode = "EDU25"
    sess.PromoApplied = true
    sess.Discount = 25

    order := c.BuildOrder(sess, 49)

    assert.Equal(t, "EDU25", order.PromoCode)
    assert.Equal(t, 25, order.Discount)
    assert.Equal(t, "jordan@northfield.edu", order.Email)
    assert.Equal(t, models.BillingAnnual, order.BillingCycle)
    assert.Len(t, order.AddOns, 1)
    // the total sent to the gateway is pre-promo; the discount rides
    // alongside as a percent
    assert.InDelta(t, 49*12*0.8+2*5.00, order.TotalAmount, 0.001)
    assert.Equal(t, "card", order.PaymentMethod)
}

func TestBuildOrderWithoutPromo(t *testing.T) {
    c := NewController(nil, nil)

    sess := NewSession(testNow)
    sess.Account = validAccount()
    sess.PlanID = "plan-standard"

    order := c.BuildOrder(sess, 49)

    assert.Empty(t, order.PromoCode)
    assert.Zero(t, order.Discount)
    assert.InDelta(t, 49.0, order.TotalAmount, 0.001)
}
