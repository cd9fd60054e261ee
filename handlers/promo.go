package handlers

import (
    "encoding/json"
    "log"
    "net/http"
    "strings"

    "scholarly-checkout-api/database"
    "scholarly-checkout-api/i18n"
    "scholarly-checkout-api/models"
    "scholarly-checkout-api/services/wizard"
    "scholarly-checkout-api/utils"
)

// PromoHandler validates promo codes against the current session total and
// applies them to the wizard state.
type PromoHandler struct {
    db         *database.Connection
    controller *wizard.Controller
    cookies    *SessionCookies
    translator *i18n.Translator
}

func NewPromoHandler(db *database.Connection, controller *wizard.Controller,
    cookies *SessionCookies, translator *i18n.Translator) *PromoHandler {
    return &PromoHandler{
        db:         db,
        controller: controller,
        cookies:    cookies,
        translator: translator,
    }
}

type validatePromoRequest struct {
    PromoCode string `json:"promoCode"`
}

// ValidatePromo checks a promo code and, when valid, stores it on the
// session. The discount only becomes non-zero together with the applied
// flag, and clearing happens atomically in the other direction too.
func (h *PromoHandler) ValidatePromo(w http.ResponseWriter, r *http.Request) {
    id := h.cookies.SessionID(r)
    if id == "" {
        utils.SendErrorResponse(w, http.StatusNotFound, models.ErrCodeGeneral, "No active checkout session")
        return
    }

    sess, err := h.controller.Load(r.Context(), id)
    if err != nil {
        utils.SendErrorResponse(w, http.StatusNotFound, models.ErrCodeGeneral, "No active checkout session")
        return
    }

    var req validatePromoRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, models.ErrCodeGeneral, "Invalid request body")
        return
    }

    code := strings.TrimSpace(strings.ToUpper(req.PromoCode))
    if code == "" {
        utils.SendErrorResponse(w, http.StatusBadRequest, models.ErrCodePromoInvalid, localize(r, h.translator, models.ErrCodePromoInvalid))
        return
    }

    promo, err := h.db.GetPromoCode(code)
    if err != nil {
        log.Printf("Error looking up promo code: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return
    }

    if promo == nil || !promo.Active {
        utils.SendErrorResponse(w, http.StatusUnprocessableEntity, models.ErrCodePromoInvalid, localize(r, h.translator, models.ErrCodePromoInvalid))
        return
    }
    if promo.Expired {
        utils.SendErrorResponse(w, http.StatusUnprocessableEntity, models.ErrCodePromoExpired, localize(r, h.translator, models.ErrCodePromoExpired))
        return
    }

    // The minimum applies to the pre-promo total of the current selection.
    var monthlyPrice float64
    if sess.PlanID != "" {
        if plan, planErr := h.db.GetPlanByID(sess.PlanID); planErr == nil {
            monthlyPrice = plan.MonthlyPrice
        }
    }
    subtotal := sess.Quote(monthlyPrice).Subtotal
    if subtotal < promo.MinAmount {
        utils.SendErrorResponse(w, http.StatusUnprocessableEntity, models.ErrCodePromoMinAmount, localize(r, h.translator, models.ErrCodePromoMinAmount))
        return
    }

    sess.PromoCode = code
    sess.PromoApplied = true
    sess.Discount = promo.DiscountPercent

    if err := h.controller.Store().Save(r.Context(), sess); err != nil {
        log.Printf("Error saving promo application for session %s: %v", sess.ID, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{
        Status:  "success",
        Message: localize(r, h.translator, "promo_applied"),
        Data: map[string]interface{}{
            "discount": promo.DiscountPercent,
            "quote":    sess.Quote(monthlyPrice),
        },
    })
}

// RemovePromo clears an applied promo from the session.
func (h *PromoHandler) RemovePromo(w http.ResponseWriter, r *http.Request) {
    id := h.cookies.SessionID(r)
    if id == "" {
        utils.SendErrorResponse(w, http.StatusNotFound, models.ErrCodeGeneral, "No active checkout session")
        return
    }

    sess, err := h.controller.Load(r.Context(), id)
    if err != nil {
        utils.SendErrorResponse(w, http.StatusNotFound, models.ErrCodeGeneral, "No active checkout session")
        return
    }

    sess.ClearPromo()

    if err := h.controller.Store().Save(r.Context(), sess); err != nil {
        log.Printf("Error clearing promo for session %s: %v", sess.ID, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{
        Status:  "success",
        Message: "Promo code removed",
    })
}
