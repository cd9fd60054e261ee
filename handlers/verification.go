package handlers

import (
    "encoding/json"
    "log"
    "net/http"

    "scholarly-checkout-api/database"
    "scholarly-checkout-api/i18n"
    "scholarly-checkout-api/models"
    "scholarly-checkout-api/services/verification"
    "scholarly-checkout-api/services/wizard"
    "scholarly-checkout-api/utils"
)

// VerificationHandler exposes the email verification endpoints backing
// step 2 of the wizard.
type VerificationHandler struct {
    db         *database.Connection
    controller *wizard.Controller
    cookies    *SessionCookies
    translator *i18n.Translator
}

func NewVerificationHandler(db *database.Connection, controller *wizard.Controller,
    cookies *SessionCookies, translator *i18n.Translator) *VerificationHandler {
    return &VerificationHandler{
        db:         db,
        controller: controller,
        cookies:    cookies,
        translator: translator,
    }
}

func (h *VerificationHandler) loadSession(w http.ResponseWriter, r *http.Request) *wizard.Session {
    id := h.cookies.SessionID(r)
    if id == "" {
        utils.SendErrorResponse(w, http.StatusNotFound, models.ErrCodeGeneral, "No active checkout session")
        return nil
    }

    sess, err := h.controller.Load(r.Context(), id)
    if err == wizard.ErrNoSession {
        utils.SendErrorResponse(w, http.StatusNotFound, models.ErrCodeGeneral, "No active checkout session")
        return nil
    }
    if err != nil {
        log.Printf("Error loading checkout session %s: %v", id, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return nil
    }
    return sess
}

type sendVerificationRequest struct {
    Email string `json:"email"`
}

// SendVerification issues the first code for a session. An email that
// already belongs to an account is rejected with the distinct email_exists
// code so the client can offer sign-in instead of a dead end.
func (h *VerificationHandler) SendVerification(w http.ResponseWriter, r *http.Request) {
    sess := h.loadSession(w, r)
    if sess == nil {
        return
    }

    var req sendVerificationRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, models.ErrCodeGeneral, "Invalid request body")
        return
    }
    if req.Email != "" {
        sess.Account.Email = req.Email
    }
    if sess.Account.Email == "" {
        utils.SendErrorResponse(w, http.StatusBadRequest, models.ErrCodeGeneral, "Email is required")
        return
    }

    exists, err := h.db.EmailExists(sess.Account.Email)
    if err != nil {
        log.Printf("Error checking email existence: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return
    }
    if exists {
        utils.SendErrorResponse(w, http.StatusConflict, models.ErrCodeEmailExists, localize(r, h.translator, models.ErrCodeEmailExists))
        return
    }

    ctx, cancel := verification.WithTimeout(r.Context())
    defer cancel()

    if err := h.controller.SendCode(ctx, sess); err != nil {
        log.Printf("Error sending verification code for session %s: %v", sess.ID, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{
        Status:  "success",
        Message: localize(r, h.translator, "code_sent"),
    })
}

type verifyCodeRequest struct {
    Code string `json:"code"`
}

// VerifyCode checks the submitted code. Format and expiry failures are
// settled locally without consulting the stored code; a mismatch counts an
// attempt and the third consecutive one surfaces the troubleshooting panel.
func (h *VerificationHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
    sess := h.loadSession(w, r)
    if sess == nil {
        return
    }

    var req verifyCodeRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, models.ErrCodeGeneral, "Invalid request body")
        return
    }

    ctx, cancel := verification.WithTimeout(r.Context())
    defer cancel()

    err := h.controller.VerifyCode(ctx, sess, req.Code)
    switch err {
    case nil:
        utils.SendSuccessResponse(w, models.APIResponse{
            Status:  "success",
            Message: localize(r, h.translator, "code_verified"),
            Data:    map[string]int{"current_step": sess.CurrentStep},
        })
    case wizard.ErrInvalidCode, wizard.ErrNoCodeIssued:
        utils.SendErrorResponse(w, http.StatusUnprocessableEntity, models.ErrCodeInvalidCode, localize(r, h.translator, models.ErrCodeInvalidCode))
    case wizard.ErrCodeExpired:
        utils.SendErrorResponse(w, http.StatusUnprocessableEntity, models.ErrCodeExpired, localize(r, h.translator, models.ErrCodeExpired))
    case wizard.ErrCodeMismatch:
        w.Header().Set("Content-Type", "application/json")
        w.WriteHeader(http.StatusUnprocessableEntity)
        json.NewEncoder(w).Encode(models.APIResponse{
            Status:    "error",
            Message:   localize(r, h.translator, models.ErrCodeInvalidCode),
            ErrorCode: models.ErrCodeInvalidCode,
            Data: map[string]interface{}{
                "failed_attempts":      sess.Verification.FailedAttempts,
                "show_troubleshooting": sess.Verification.ShowTroubleshooting,
            },
        })
    default:
        log.Printf("Error verifying code for session %s: %v", sess.ID, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
    }
}

// ResendCode re-issues a code once the cooldown has elapsed. During the
// cooldown nothing happens at all: no email, no state change.
func (h *VerificationHandler) ResendCode(w http.ResponseWriter, r *http.Request) {
    sess := h.loadSession(w, r)
    if sess == nil {
        return
    }

    ctx, cancel := verification.WithTimeout(r.Context())
    defer cancel()

    err := h.controller.ResendCode(ctx, sess)
    if err == wizard.ErrResendCooldown {
        utils.SendErrorResponse(w, http.StatusTooManyRequests, models.ErrCodeResendCooldown, localize(r, h.translator, models.ErrCodeResendCooldown))
        return
    }
    if err != nil {
        log.Printf("Error resending verification code for session %s: %v", sess.ID, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{
        Status:  "success",
        Message: localize(r, h.translator, "code_sent"),
    })
}
