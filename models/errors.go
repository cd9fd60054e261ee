package models

// Validation error codes attached to FieldError.Code. The i18n tables carry
// one message key per code.
const (
    ErrRequired              = "required"
    ErrFirstNameLength       = "first_name_length"
    ErrLastNameLength        = "last_name_length"
    ErrInvalidEmail          = "invalid_email"
    ErrInvalidPhone          = "invalid_phone"
    ErrPasswordLength        = "password_length"
    ErrPasswordMismatch      = "password_mismatch"
    ErrAddressLength         = "address_length"
    ErrCityLength            = "city_length"
    ErrZipLength             = "zip_length"
    ErrCustomCountryRequired = "custom_country_required"
    ErrInvalidCardNumber     = "invalid_card_number"
    ErrInvalidExpiry         = "invalid_expiry"
    ErrExpiredCard           = "expired_card"
    ErrInvalidCVV            = "invalid_cvv"
    ErrEmailNotVerified      = "email_not_verified"
)

// Business error codes carried in APIResponse.ErrorCode.
const (
    ErrCodeInvalidCode      = "invalid_code"
    ErrCodeExpired          = "code_expired"
    ErrCodeResendCooldown   = "resend_cooldown"
    ErrCodeEmailExists      = "email_exists"
    ErrCodePromoInvalid     = "promo_invalid"
    ErrCodePromoExpired     = "promo_expired"
    ErrCodePromoMinAmount   = "promo_min_amount"
    ErrCodePaymentDeclined  = "payment_declined"
    ErrCodeGatewayTimeout   = "gateway_timeout"
    ErrCodeSubmitInProgress = "submit_in_progress"
    ErrCodeGeneral          = "general_error"
)
