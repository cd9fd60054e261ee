package i18n

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"

    "scholarly-checkout-api/models"
)

func TestDefaultLocalesLoaded(t *testing.T) {
    tr := NewTranslator()

    assert.True(t, tr.Supported("en"))
    assert.True(t, tr.Supported("es"))
    assert.True(t, tr.Supported("pt"))
    assert.False(t, tr.Supported("fr"))
}

func TestTranslationCoversAllErrorCodes(t *testing.T) {
    tr := NewTranslator()

    codes := []string{
        models.ErrRequired,
        models.ErrFirstNameLength,
        models.ErrInvalidEmail,
        models.ErrPasswordMismatch,
        models.ErrInvalidCardNumber,
        models.ErrEmailNotVerified,
        models.ErrCodeInvalidCode,
        models.ErrCodeExpired,
        models.ErrCodeResendCooldown,
        models.ErrCodeEmailExists,
        models.ErrCodePromoInvalid,
        models.ErrCodePaymentDeclined,
        models.ErrCodeGatewayTimeout,
        models.ErrCodeGeneral,
    }

    for _, locale := range []string{"en", "es", "pt"} {
        for _, code := range codes {
            got := tr.T(locale, code)
            assert.NotEqual(t, code, got, "missing %s translation for %s", locale, code)
        }
    }
}

func TestFallbackToEnglishThenKey(t *testing.T) {
    tr := NewTranslator()
    tr.Load("en", map[string]string{"only_english": "Only in English"})

    assert.Equal(t, "Only in English", tr.T("es", "only_english"))
    assert.Equal(t, "no_such_key", tr.T("en", "no_such_key"))
}

func TestParseAcceptLanguage(t *testing.T) {
    tr := NewTranslator()

    tests := []struct {
        header string
        want   string
    }{
        {"es", "es"},
        {"pt-BR,pt;q=0.9,en;q=0.8", "pt"},
        {"fr-FR,fr;q=0.9", "en"},
        {"fr, es;q=0.7", "es"},
        {"ES", "es"},
        {"", "en"},
    }

    for _, tt := range tests {
        assert.Equal(t, tt.want, tr.ParseAcceptLanguage(tt.header), "header %q", tt.header)
    }
}

func TestLocaleContextRoundTrip(t *testing.T) {
    ctx := WithLocale(context.Background(), "pt")
    assert.Equal(t, "pt", LocaleFrom(ctx))

    assert.Equal(t, "en", LocaleFrom(context.Background()))
}
