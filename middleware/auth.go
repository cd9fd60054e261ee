package middleware

import (
    "context"
    "log"
    "net/http"
    "strings"

    "scholarly-checkout-api/models"
    "scholarly-checkout-api/services/auth"
    "scholarly-checkout-api/utils"
)

type contextKey string

const ClaimsContextKey contextKey = "claims"

// AuthMiddleware guards the dashboard endpoints with a Bearer token.
func AuthMiddleware(jwtService *auth.JWTService) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            authHeader := r.Header.Get("Authorization")
            if authHeader == "" {
                log.Printf("Missing Authorization header from %s", r.RemoteAddr)
                utils.SendErrorResponse(w, http.StatusUnauthorized, models.ErrCodeGeneral, "Missing authorization header")
                return
            }

            parts := strings.Split(authHeader, " ")
            if len(parts) != 2 || parts[0] != "Bearer" {
                log.Printf("Invalid Authorization header format from %s", r.RemoteAddr)
                utils.SendErrorResponse(w, http.StatusUnauthorized, models.ErrCodeGeneral, "Invalid authorization header format")
                return
            }

            claims, err := jwtService.ValidateToken(parts[1])
            if err != nil {
                log.Printf("Token validation failed from %s: %v", r.RemoteAddr, err)

                var message string
                switch err {
                case auth.ErrTokenExpired:
                    message = "Token expired"
                default:
                    message = "Invalid token"
                }

                utils.SendErrorResponse(w, http.StatusUnauthorized, models.ErrCodeGeneral, message)
                return
            }

            if claims.TokenType != "access" {
                utils.SendErrorResponse(w, http.StatusUnauthorized, models.ErrCodeGeneral, "Invalid token")
                return
            }

            ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// GetClaimsFromContext returns the authenticated claims, or nil outside the
// auth middleware.
func GetClaimsFromContext(ctx context.Context) *auth.Claims {
    claims, _ := ctx.Value(ClaimsContextKey).(*auth.Claims)
    return claims
}
