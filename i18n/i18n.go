// Package i18n resolves error codes and messages to localized strings for
// API responses, keyed by the request's Accept-Language.
package i18n

import (
    "context"
    "strings"
    "sync"
)

const DefaultLocale = "en"

type Translator struct {
    translations map[string]map[string]string // locale -> key -> value
    fallback     string
    mu           sync.RWMutex
}

func NewTranslator() *Translator {
    t := &Translator{
        translations: make(map[string]map[string]string),
        fallback:     DefaultLocale,
    }
    for locale, table := range defaultTables() {
        t.Load(locale, table)
    }
    return t
}

// Load merges translations for a locale.
func (t *Translator) Load(locale string, translations map[string]string) {
    t.mu.Lock()
    defer t.mu.Unlock()

    if t.translations[locale] == nil {
        t.translations[locale] = make(map[string]string)
    }
    for key, value := range translations {
        t.translations[locale][key] = value
    }
}

// T returns the localized string for a key, falling back to the default
// locale and then to the key itself. No raw backend text ever reaches the
// client unresolved: unknown keys render as the generic error.
func (t *Translator) T(locale, key string) string {
    t.mu.RLock()
    defer t.mu.RUnlock()

    if table, ok := t.translations[locale]; ok {
        if value, ok := table[key]; ok {
            return value
        }
    }
    if table, ok := t.translations[t.fallback]; ok {
        if value, ok := table[key]; ok {
            return value
        }
    }
    return key
}

// Supported reports whether a locale has a table loaded.
func (t *Translator) Supported(locale string) bool {
    t.mu.RLock()
    defer t.mu.RUnlock()
    _, ok := t.translations[locale]
    return ok
}

// ParseAcceptLanguage picks the first supported locale from an
// Accept-Language header, ignoring quality weights beyond ordering.
func (t *Translator) ParseAcceptLanguage(header string) string {
    for _, part := range strings.Split(header, ",") {
        lang := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
        if lang == "" {
            continue
        }
        lang = strings.ToLower(strings.SplitN(lang, "-", 2)[0])
        if t.Supported(lang) {
            return lang
        }
    }
    return DefaultLocale
}

type contextKey struct{}

// WithLocale stores the resolved locale on the request context.
func WithLocale(ctx context.Context, locale string) context.Context {
    return context.WithValue(ctx, contextKey{}, locale)
}

// LocaleFrom reads the locale from the context, defaulting to en.
func LocaleFrom(ctx context.Context) string {
    if locale, ok := ctx.Value(contextKey{}).(string); ok && locale != "" {
        return locale
    }
    return DefaultLocale
}
