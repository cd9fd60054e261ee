package handlers

import (
    "net/http"

    "github.com/gorilla/sessions"

    "scholarly-checkout-api/config"
    "scholarly-checkout-api/i18n"
)

const checkoutCookieName = "checkout-session"

// SessionCookies carries the checkout session ID in a secure cookie, one
// session per browser tab context.
type SessionCookies struct {
    store *sessions.CookieStore
}

func NewSessionCookies(cfg *config.Config) *SessionCookies {
    store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
    store.Options = &sessions.Options{
        Path:     "/",
        Domain:   cfg.Session.Domain,
        MaxAge:   cfg.Session.MaxAge,
        Secure:   true,
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    }
    return &SessionCookies{store: store}
}

// SessionID returns the checkout session ID from the cookie, or "".
func (sc *SessionCookies) SessionID(r *http.Request) string {
    session, err := sc.store.Get(r, checkoutCookieName)
    if err != nil {
        return ""
    }
    id, _ := session.Values["session_id"].(string)
    return id
}

// SetSessionID writes the checkout session ID cookie.
func (sc *SessionCookies) SetSessionID(w http.ResponseWriter, r *http.Request, id string) error {
    session, _ := sc.store.Get(r, checkoutCookieName)
    session.Values["session_id"] = id
    return session.Save(r, w)
}

// ClearSessionID drops the cookie after a completed checkout.
func (sc *SessionCookies) ClearSessionID(w http.ResponseWriter, r *http.Request) {
    session, _ := sc.store.Get(r, checkoutCookieName)
    session.Options.MaxAge = -1
    session.Save(r, w)
}

// localize resolves a message key against the request's locale.
func localize(r *http.Request, translator *i18n.Translator, key string) string {
    return translator.T(i18n.LocaleFrom(r.Context()), key)
}
