package wizard

import (
    "regexp"
    "strings"
    "time"

    "scholarly-checkout-api/models"
    "scholarly-checkout-api/services/card"
)

var (
    emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
    phoneRegex = regexp.MustCompile(`^\+?\d{7,15}$`)
)

// ValidateStep validates the form fields owned by one step and returns the
// field error map. Other steps' errors are untouched by the caller.
func ValidateStep(sess *Session, step int, now time.Time) []models.FieldError {
    switch step {
    case StepAccount:
        return validateAccount(sess.Account)
    case StepVerify:
        if !sess.Verification.IsVerified() {
            return []models.FieldError{{Field: "verificationCode", Code: models.ErrEmailNotVerified}}
        }
        return nil
    case StepPayment:
        return validatePayment(sess.Payment, now)
    case StepBilling:
        return validateBilling(sess.Billing)
    }
    return nil
}

func validateAccount(a models.AccountInfo) []models.FieldError {
    var errs []models.FieldError

    switch {
    case strings.TrimSpace(a.FirstName) == "":
        errs = append(errs, models.FieldError{Field: "firstName", Code: models.ErrRequired})
    case len(strings.TrimSpace(a.FirstName)) < 2:
        errs = append(errs, models.FieldError{Field: "firstName", Code: models.ErrFirstNameLength})
    }

    switch {
    case strings.TrimSpace(a.LastName) == "":
        errs = append(errs, models.FieldError{Field: "lastName", Code: models.ErrRequired})
    case len(strings.TrimSpace(a.LastName)) < 2:
        errs = append(errs, models.FieldError{Field: "lastName", Code: models.ErrLastNameLength})
    }

    switch {
    case strings.TrimSpace(a.Email) == "":
        errs = append(errs, models.FieldError{Field: "email", Code: models.ErrRequired})
    case !emailRegex.MatchString(a.Email):
        errs = append(errs, models.FieldError{Field: "email", Code: models.ErrInvalidEmail})
    }

    switch {
    case strings.TrimSpace(a.Phone) == "":
        errs = append(errs, models.FieldError{Field: "phone", Code: models.ErrRequired})
    case !phoneRegex.MatchString(a.Phone):
        errs = append(errs, models.FieldError{Field: "phone", Code: models.ErrInvalidPhone})
    }

    switch {
    case a.Password == "":
        errs = append(errs, models.FieldError{Field: "password", Code: models.ErrRequired})
    case len(a.Password) < 8:
        errs = append(errs, models.FieldError{Field: "password", Code: models.ErrPasswordLength})
    }

    switch {
    case a.ConfirmPassword == "":
        errs = append(errs, models.FieldError{Field: "confirmPassword", Code: models.ErrRequired})
    case a.ConfirmPassword != a.Password:
        errs = append(errs, models.FieldError{Field: "confirmPassword", Code: models.ErrPasswordMismatch})
    }

    return errs
}

func validatePayment(p models.PaymentInfo, now time.Time) []models.FieldError {
    var errs []models.FieldError
    network := card.Detect(p.CardNumber)

    switch {
    case strings.TrimSpace(p.CardNumber) == "":
        errs = append(errs, models.FieldError{Field: "cardNumber", Code: models.ErrRequired})
    case !card.ValidateNumber(p.CardNumber):
        errs = append(errs, models.FieldError{Field: "cardNumber", Code: models.ErrInvalidCardNumber})
    }

    switch {
    case strings.TrimSpace(p.ExpiryDate) == "":
        errs = append(errs, models.FieldError{Field: "expiryDate", Code: models.ErrRequired})
    case !card.ValidExpiryFormat(p.ExpiryDate):
        errs = append(errs, models.FieldError{Field: "expiryDate", Code: models.ErrInvalidExpiry})
    case !card.ValidateExpiry(p.ExpiryDate, now):
        errs = append(errs, models.FieldError{Field: "expiryDate", Code: models.ErrExpiredCard})
    }

    switch {
    case strings.TrimSpace(p.CVV) == "":
        errs = append(errs, models.FieldError{Field: "cvv", Code: models.ErrRequired})
    case !card.ValidateCVV(p.CVV, network):
        errs = append(errs, models.FieldError{Field: "cvv", Code: models.ErrInvalidCVV})
    }

    return errs
}

func validateBilling(b models.BillingAddress) []models.FieldError {
    var errs []models.FieldError

    switch {
    case strings.TrimSpace(b.Address) == "":
        errs = append(errs, models.FieldError{Field: "address", Code: models.ErrRequired})
    case len(strings.TrimSpace(b.Address)) < 5:
        errs = append(errs, models.FieldError{Field: "address", Code: models.ErrAddressLength})
    }

    switch {
    case strings.TrimSpace(b.City) == "":
        errs = append(errs, models.FieldError{Field: "city", Code: models.ErrRequired})
    case len(strings.TrimSpace(b.City)) < 2:
        errs = append(errs, models.FieldError{Field: "city", Code: models.ErrCityLength})
    }

    if strings.TrimSpace(b.State) == "" {
        errs = append(errs, models.FieldError{Field: "state", Code: models.ErrRequired})
    }

    switch {
    case strings.TrimSpace(b.ZipCode) == "":
        errs = append(errs, models.FieldError{Field: "zipCode", Code: models.ErrRequired})
    case len(strings.TrimSpace(b.ZipCode)) < 3:
        errs = append(errs, models.FieldError{Field: "zipCode", Code: models.ErrZipLength})
    }

    if strings.TrimSpace(b.Country) == "" {
        errs = append(errs, models.FieldError{Field: "country", Code: models.ErrRequired})
    } else if b.Country == "other" && strings.TrimSpace(b.CustomCountry) == "" {
        errs = append(errs, models.FieldError{Field: "customCountry", Code: models.ErrCustomCountryRequired})
    }

    return errs
}
