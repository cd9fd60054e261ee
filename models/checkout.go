package models

// AccountInfo holds the step-1 form fields.
type AccountInfo struct {
    FirstName       string `json:"firstName"`
    LastName        string `json:"lastName"`
    Email           string `json:"email"`
    Phone           string `json:"phone"`
    InstitutionName string `json:"institutionName"`
    Password        string `json:"password"`
    ConfirmPassword string `json:"confirmPassword"`
    Country         string `json:"country"`
    CustomCountry   string `json:"customCountry"`
}

// BillingAddress holds the step-4 form fields. Address2 is the only
// optional field.
type BillingAddress struct {
    Address       string `json:"address"`
    Address2      string `json:"address2"`
    City          string `json:"city"`
    State         string `json:"state"`
    ZipCode       string `json:"zipCode"`
    Country       string `json:"country"`
    CustomCountry string `json:"customCountry"`
}

// PaymentInfo holds the step-3 form fields as typed by the user, already
// passed through the card formatter.
type PaymentInfo struct {
    CardNumber string `json:"cardNumber"`
    ExpiryDate string `json:"expiryDate"`
    CVV        string `json:"cvv"`
}

// OrderRequest is the composite payload POSTed to /api/checkout from step 4.
type OrderRequest struct {
    FirstName       string         `json:"firstName"`
    LastName        string         `json:"lastName"`
    Email           string         `json:"email"`
    Phone           string         `json:"phone"`
    InstitutionName string         `json:"institutionName"`
    Password        string         `json:"password"`
    BillingAddress  BillingAddress `json:"billingAddress"`
    PaymentInfo     PaymentInfo    `json:"paymentInfo"`
    PlanID          string         `json:"planId"`
    BillingCycle    BillingCycle   `json:"billingCycle"`
    AddOns          []AddOn        `json:"addOns"`
    TotalAmount     float64        `json:"totalAmount"`
    PromoCode       string         `json:"promoCode,omitempty"`
    Discount        int            `json:"discount,omitempty"`
    PaymentMethod   string         `json:"paymentMethod"`
}

// OrderUser is the account surface returned after a successful checkout.
type OrderUser struct {
    ID              string `json:"id"`
    FirstName       string `json:"firstName"`
    LastName        string `json:"lastName"`
    Email           string `json:"email"`
    InstitutionName string `json:"institutionName"`
}

// OrderSubscription is the subscription surface returned after a successful
// checkout.
type OrderSubscription struct {
    ID           string       `json:"id"`
    PlanID       string       `json:"planId"`
    PlanName     string       `json:"planName"`
    BillingCycle BillingCycle `json:"billingCycle"`
    TotalAmount  float64      `json:"totalAmount"`
    RenewDate    string       `json:"renewDate"`
}

type OrderResult struct {
    User         OrderUser         `json:"user"`
    Subscription OrderSubscription `json:"subscription"`
}
