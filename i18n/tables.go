package i18n

// defaultTables carries the built-in message tables. Keys match the
// validation and business error codes in models/errors.go.
func defaultTables() map[string]map[string]string {
    return map[string]map[string]string{
        "en": {
            "required":                "This field is required",
            "first_name_length":       "First name must be at least 2 characters",
            "last_name_length":        "Last name must be at least 2 characters",
            "invalid_email":           "Please enter a valid email address",
            "invalid_phone":           "Please enter a valid phone number",
            "password_length":         "Password must be at least 8 characters",
            "password_mismatch":       "Passwords do not match",
            "address_length":          "Address must be at least 5 characters",
            "city_length":             "City must be at least 2 characters",
            "zip_length":              "ZIP code must be at least 3 characters",
            "custom_country_required": "Please enter your country",
            "invalid_card_number":     "Please enter a valid card number",
            "invalid_expiry":          "Please enter a valid expiry date",
            "expired_card":            "This card has expired",
            "invalid_cvv":             "Please enter a valid CVV",
            "email_not_verified":      "Please verify your email address to continue",
            "invalid_code":            "Invalid verification code",
            "code_expired":            "Verification code expired, please request a new one",
            "resend_cooldown":         "Please wait before requesting another code",
            "email_exists":            "An account with this email already exists",
            "promo_invalid":           "This promo code is not valid",
            "promo_expired":           "This promo code has expired",
            "promo_min_amount":        "Your order does not meet the promo code minimum",
            "payment_declined":        "Your payment was declined",
            "gateway_timeout":         "The request timed out, please try again",
            "submit_in_progress":      "Your order is already being processed",
            "general_error":           "Something went wrong, please try again",
            "validation_failed":       "Please correct the highlighted fields",
            "code_sent":               "Verification code sent",
            "code_verified":           "Email verified",
            "promo_applied":           "Promo code applied",
            "order_created":           "Your subscription is ready",
        },
        "es": {
            "required":                "Este campo es obligatorio",
            "first_name_length":       "El nombre debe tener al menos 2 caracteres",
            "last_name_length":        "El apellido debe tener al menos 2 caracteres",
            "invalid_email":           "Introduce una dirección de correo válida",
            "invalid_phone":           "Introduce un número de teléfono válido",
            "password_length":         "La contraseña debe tener al menos 8 caracteres",
            "password_mismatch":       "Las contraseñas no coinciden",
            "address_length":          "La dirección debe tener al menos 5 caracteres",
            "city_length":             "La ciudad debe tener al menos 2 caracteres",
            "zip_length":              "El código postal debe tener al menos 3 caracteres",
            "custom_country_required": "Introduce tu país",
            "invalid_card_number":     "Introduce un número de tarjeta válido",
            "invalid_expiry":          "Introduce una fecha de caducidad válida",
            "expired_card":            "Esta tarjeta ha caducado",
            "invalid_cvv":             "Introduce un CVV válido",
            "email_not_verified":      "Verifica tu correo para continuar",
            "invalid_code":            "Código de verificación incorrecto",
            "code_expired":            "El código ha caducado, solicita uno nuevo",
            "resend_cooldown":         "Espera antes de solicitar otro código",
            "email_exists":            "Ya existe una cuenta con este correo",
            "promo_invalid":           "Este código promocional no es válido",
            "promo_expired":           "Este código promocional ha caducado",
            "promo_min_amount":        "Tu pedido no alcanza el mínimo del código promocional",
            "payment_declined":        "Tu pago fue rechazado",
            "gateway_timeout":         "La solicitud tardó demasiado, inténtalo de nuevo",
            "submit_in_progress":      "Tu pedido ya se está procesando",
            "general_error":           "Algo salió mal, inténtalo de nuevo",
            "validation_failed":       "Corrige los campos marcados",
            "code_sent":               "Código de verificación enviado",
            "code_verified":           "Correo verificado",
            "promo_applied":           "Código promocional aplicado",
            "order_created":           "Tu suscripción está lista",
        },
        "pt": {
            "required":                "Este campo é obrigatório",
            "first_name_length":       "O nome deve ter pelo menos 2 caracteres",
            "last_name_length":        "O sobrenome deve ter pelo menos 2 caracteres",
            "invalid_email":           "Informe um endereço de email válido",
            "invalid_phone":           "Informe um número de telefone válido",
            "password_length":         "A senha deve ter pelo menos 8 caracteres",
            "password_mismatch":       "As senhas não coincidem",
            "address_length":          "O endereço deve ter pelo menos 5 caracteres",
            "city_length":             "A cidade deve ter pelo menos 2 caracteres",
            "zip_length":              "O CEP deve ter pelo menos 3 caracteres",
            "custom_country_required": "Informe seu país",
            "invalid_card_number":     "Informe um número de cartão válido",
            "invalid_expiry":          "Informe uma data de validade válida",
            "expired_card":            "Este cartão está vencido",
            "invalid_cvv":             "Informe um CVV válido",
            "email_not_verified":      "Verifique seu email para continuar",
            "invalid_code":            "Código de verificação inválido",
            "code_expired":            "O código expirou, solicite um novo",
            "resend_cooldown":         "Aguarde antes de solicitar outro código",
            "email_exists":            "Já existe uma conta com este email",
            "promo_invalid":           "Este código promocional não é válido",
            "promo_expired":           "Este código promocional expirou",
            "promo_min_amount":        "Seu pedido não atinge o mínimo do código promocional",
            "payment_declined":        "Seu pagamento foi recusado",
            "gateway_timeout":         "A solicitação demorou demais, tente novamente",
            "submit_in_progress":      "Seu pedido já está sendo processado",
            "general_error":           "Algo deu errado, tente novamente",
            "validation_failed":       "Corrija os campos destacados",
            "code_sent":               "Código de verificação enviado",
            "code_verified":           "Email verificado",
            "promo_applied":           "Código promocional aplicado",
            "order_created":           "Sua assinatura está pronta",
        },
    }
}
