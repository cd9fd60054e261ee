package wizard

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"

    "scholarly-checkout-api/models"
)

var testNow = time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

func validAccount() models.AccountInfo {
    return models.AccountInfo{
        FirstName:       "Jordan",
        LastName:        "Reyes",
        Email:           "jordan@northfield.edu",
        Phone:           "+15551234567",
        InstitutionName: "Northfield Academy",
        Password:        "correct-horse",
        ConfirmPassword: "correct-horse",
    }
}

func fieldCodes(errs []models.FieldError) map[string]string {
    codes := make(map[string]string, len(errs))
    for _, e := range errs {
        codes[e.Field] = e.Code
    }
    return codes
}

func TestValidateAccountPasses(t *testing.T) {
    sess := NewSession(testNow)
    sess.Account = validAccount()

    assert.Empty(t, ValidateStep(sess, StepAccount, testNow))
}

func TestValidateAccountRequiredFields(t *testing.T) {
    sess := NewSession(testNow)

    codes := fieldCodes(ValidateStep(sess, StepAccount, testNow))

    assert.Equal(t, models.ErrRequired, codes["firstName"])
    assert.Equal(t, models.ErrRequired, codes["lastName"])
    assert.Equal(t, models.ErrRequired, codes["email"])
    assert.Equal(t, models.ErrRequired, codes["phone"])
    assert.Equal(t, models.ErrRequired, codes["password"])
    assert.Equal(t, models.ErrRequired, codes["confirmPassword"])
}

func TestValidateAccountFieldRules(t *testing.T) {
    tests := []struct {
        name     string
        mutate   func(*models.AccountInfo)
        field    string
        wantCode string
    }{
        {"short first name", func(a *models.AccountInfo) { a.FirstName = "J" }, "firstName", models.ErrFirstNameLength},
        {"short last name", func(a *models.AccountInfo) { a.LastName = "R" }, "lastName", models.ErrLastNameLength},
        {"bad email", func(a *models.AccountInfo) { a.Email = "not-an-email" }, "email", models.ErrInvalidEmail},
        {"email without domain dot", func(a *models.AccountInfo) { a.Email = "a@b" }, "email", models.ErrInvalidEmail},
        {"bad phone", func(a *models.AccountInfo) { a.Phone = "call me" }, "phone", models.ErrInvalidPhone},
        {"short phone", func(a *models.AccountInfo) { a.Phone = "12345" }, "phone", models.ErrInvalidPhone},
        {"short password", func(a *models.AccountInfo) { a.Password = "short"; a.ConfirmPassword = "short" }, "password", models.ErrPasswordLength},
        {"password mismatch", func(a *models.AccountInfo) { a.ConfirmPassword = "different-pass" }, "confirmPassword", models.ErrPasswordMismatch},
    }

    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            sess := NewSession(testNow)
            account := validAccount()
            tt.mutate(&account)
            sess.Account = account

            codes := fieldCodes(ValidateStep(sess, StepAccount, testNow))
            assert.Equal(t, tt.wantCode, codes[tt.field])
        })
    }
}

func TestValidateVerifyStepGatesOnVerification(t *testing.T) {
    sess := NewSession(testNow)

    errs := ValidateStep(sess, StepVerify, testNow)
    codes := fieldCodes(errs)
    assert.Equal(t, models.ErrEmailNotVerified, codes["verificationCode"])

    sess.Verification.MarkSent(testNow)
    sess.Verification.MarkVerified()
    assert.Empty(t, ValidateStep(sess, StepVerify, testNow))
}

func TestValidatePayment(t *testing.T) {
    sess := NewSession(testNow)
    sess.Payment = models.PaymentInfo{
        CardNumber: "4111111111111111",
        ExpiryDate: "12/25",
        CVV:        "123",
    }
    assert.Empty(t, ValidateStep(sess, StepPayment, testNow))

    sess.Payment.CardNumber = "4111111111111112"
    sess.Payment.ExpiryDate = "13/25"
    sess.Payment.CVV = "12"

    codes := fieldCodes(ValidateStep(sess, StepPayment, testNow))
    assert.Equal(t, models.ErrInvalidCardNumber, codes["cardNumber"])
    assert.Equal(t, models.ErrInvalidExpiry, codes["expiryDate"])
    assert.Equal(t, models.ErrInvalidCVV, codes["cvv"])
}

func TestValidatePaymentPastExpiryIsExpiredCard(t *testing.T) {
    sess := NewSession(testNow)
    sess.Payment = models.PaymentInfo{
        CardNumber: "4111111111111111",
        ExpiryDate: "01/20",
        CVV:        "123",
    }

    codes := fieldCodes(ValidateStep(sess, StepPayment, testNow))
    assert.Equal(t, models.ErrExpiredCard, codes["expiryDate"])
}

func TestValidatePaymentAmexCVVLength(t *testing.T) {
    sess := NewSession(testNow)
    sess.Payment = models.PaymentInfo{
        CardNumber: "371449635398431",
        ExpiryDate: "12/25",
        CVV:        "123",
    }

    codes := fieldCodes(ValidateStep(sess, StepPayment, testNow))
    assert.Equal(t, models.ErrInvalidCVV, codes["cvv"])

    sess.Payment.CVV = "1234"
    assert.Empty(t, ValidateStep(sess, StepPayment, testNow))
}

func TestValidateBilling(t *testing.T) {
    sess := NewSession(testNow)
    sess.Billing = models.BillingAddress{
        Address: "120 Hillcrest Avenue",
        City:    "Portland",
        State:   "OR",
        ZipCode: "97201",
        Country: "us",
    }
    assert.Empty(t, ValidateStep(sess, StepBilling, testNow))

    sess.Billing.Address = "12"
    sess.Billing.ZipCode = "12"

    codes := fieldCodes(ValidateStep(sess, StepBilling, testNow))
    assert.Equal(t, models.ErrAddressLength, codes["address"])
    assert.Equal(t, models.ErrZipLength, codes["zipCode"])
}

func TestValidateBillingCustomCountry(t *testing.T) {
    sess := NewSession(testNow)
    sess.Billing = models.BillingAddress{
        Address: "120 Hillcrest Avenue",
        City:    "Portland",
        State:   "OR",
        ZipCode: "97201",
        Country: "other",
    }

    codes := fieldCodes(ValidateStep(sess, StepBilling, testNow))
    assert.Equal(t, models.ErrCustomCountryRequired, codes["customCountry"])

    sess.Billing.CustomCountry = "Iceland"
    assert.Empty(t, ValidateStep(sess, StepBilling, testNow))
}
