package handlers

import (
    "database/sql"
    "encoding/json"
    "log"
    "net/http"

    "scholarly-checkout-api/database"
    "scholarly-checkout-api/i18n"
    "scholarly-checkout-api/middleware"
    "scholarly-checkout-api/models"
    "scholarly-checkout-api/services/auth"
    "scholarly-checkout-api/utils"
)

// DashboardHandler backs the post-checkout dashboard shell: sign-in, token
// refresh and the account summary.
type DashboardHandler struct {
    db         *database.Connection
    jwtService *auth.JWTService
    translator *i18n.Translator
}

func NewDashboardHandler(db *database.Connection, jwtService *auth.JWTService,
    translator *i18n.Translator) *DashboardHandler {
    return &DashboardHandler{
        db:         db,
        jwtService: jwtService,
        translator: translator,
    }
}

// Login authenticates with email and password.
func (h *DashboardHandler) Login(w http.ResponseWriter, r *http.Request) {
    var req models.AuthRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, models.ErrCodeGeneral, "Invalid request body")
        return
    }

    if req.Email == "" || req.Password == "" {
        utils.SendErrorResponse(w, http.StatusBadRequest, models.ErrCodeGeneral, "Email and password are required")
        return
    }

    resp, err := h.jwtService.Authenticate(req.Email, req.Password)
    if err == auth.ErrInvalidCredentials {
        utils.SendErrorResponse(w, http.StatusUnauthorized, models.ErrCodeGeneral, "Invalid email or password")
        return
    }
    if err != nil {
        log.Printf("Error authenticating %s: %v", req.Email, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{
        Status:  "success",
        Message: "Authenticated",
        Data:    resp,
    })
}

type refreshRequest struct {
    RefreshToken string `json:"refresh_token"`
}

// Refresh exchanges a refresh token for a fresh access token.
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
    var req refreshRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
        utils.SendErrorResponse(w, http.StatusBadRequest, models.ErrCodeGeneral, "Refresh token is required")
        return
    }

    resp, err := h.jwtService.Refresh(req.RefreshToken)
    if err != nil {
        utils.SendErrorResponse(w, http.StatusUnauthorized, models.ErrCodeGeneral, "Invalid or expired refresh token")
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{
        Status:  "success",
        Message: "Token refreshed",
        Data:    resp,
    })
}

// Summary returns the signed-in user's account and active subscription.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
    claims := middleware.GetClaimsFromContext(r.Context())
    if claims == nil {
        utils.SendErrorResponse(w, http.StatusUnauthorized, models.ErrCodeGeneral, "Not authenticated")
        return
    }

    user, _, err := h.db.GetUserByEmail(claims.Email)
    if err != nil {
        log.Printf("Error loading user %s: %v", claims.Email, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return
    }

    summary := models.DashboardSummary{User: *user}

    sub, err := h.db.GetSubscriptionByUser(user.ID)
    if err != nil && err != sql.ErrNoRows {
        log.Printf("Error loading subscription for user %s: %v", user.ID, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return
    }
    if err == nil {
        summary.Subscription = sub
    }

    utils.SendSuccessResponse(w, models.APIResponse{
        Status:  "success",
        Message: "Dashboard summary",
        Data:    summary,
    })
}
