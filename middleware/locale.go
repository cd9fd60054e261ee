package middleware

import (
    "net/http"

    "scholarly-checkout-api/i18n"
)

// LocaleMiddleware resolves the Accept-Language header to a supported
// locale and stores it on the request context. Handlers localize every
// message through the translator; the raw header never drives matching
// anywhere else.
func LocaleMiddleware(translator *i18n.Translator) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            locale := translator.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
            ctx := i18n.WithLocale(r.Context(), locale)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}
