package models

type BillingCycle string

const (
    BillingMonthly BillingCycle = "monthly"
    BillingAnnual  BillingCycle = "annual"
)

func (b BillingCycle) IsValid() bool {
    return b == BillingMonthly || b == BillingAnnual
}

type Plan struct {
    ID           string   `json:"_id"`
    Name         string   `json:"name"`
    MonthlyPrice float64  `json:"monthlyPrice"`
    AnnualPrice  float64  `json:"annualPrice"`
    Features     []string `json:"features"`
}

// AddOn is a priced, quantity-bound extra layered onto a base plan. One
// instance exists per add-on type; Quantity stays within [0, MaxQuantity].
type AddOn struct {
    ID          string  `json:"id"`
    Name        string  `json:"name"`
    UnitPrice   float64 `json:"unitPrice"`
    Quantity    int     `json:"quantity"`
    MaxQuantity int     `json:"maxQuantity"`
}

// DefaultAddOns returns the catalog of purchasable extras with zero
// quantities.
func DefaultAddOns() []AddOn {
    return []AddOn{
        {ID: "admin", Name: "Additional Admin Seats", UnitPrice: 8.00, MaxQuantity: 10},
        {ID: "teacher", Name: "Additional Teacher Seats", UnitPrice: 5.00, MaxQuantity: 50},
        {ID: "student", Name: "Additional Student Seats", UnitPrice: 1.50, MaxQuantity: 500},
        {ID: "parent", Name: "Parent Portal Access", UnitPrice: 1.00, MaxQuantity: 500},
        {ID: "storage", Name: "Extra Storage (50 GB)", UnitPrice: 4.00, MaxQuantity: 20},
    }
}

type PromoCode struct {
    Code            string  `json:"code"`
    DiscountPercent int     `json:"discount_percent"`
    MinAmount       float64 `json:"min_amount"`
    Active          bool    `json:"active"`
    Expired         bool    `json:"expired"`
}
