package handlers

import (
    "database/sql"
    "encoding/json"
    "log"
    "net/http"
    "time"

    "scholarly-checkout-api/database"
    "scholarly-checkout-api/i18n"
    "scholarly-checkout-api/models"
    "scholarly-checkout-api/services/wizard"
    "scholarly-checkout-api/utils"
)

// WizardHandler owns the session lifecycle endpoints: fetch/create, field
// updates, and step transitions.
type WizardHandler struct {
    db         *database.Connection
    controller *wizard.Controller
    cookies    *SessionCookies
    translator *i18n.Translator
}

func NewWizardHandler(db *database.Connection, controller *wizard.Controller,
    cookies *SessionCookies, translator *i18n.Translator) *WizardHandler {
    return &WizardHandler{
        db:         db,
        controller: controller,
        cookies:    cookies,
        translator: translator,
    }
}

// loadSession resolves the cookie to a live session, or nil after replying
// with an error.
func (h *WizardHandler) loadSession(w http.ResponseWriter, r *http.Request) *wizard.Session {
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

// monthlyPrice resolves the selected plan's monthly price; zero when no
// plan has been chosen yet.
func (h *WizardHandler) monthlyPrice(sess *wizard.Session) float64 {
    if sess.PlanID == "" {
        return 0
    }
    plan, err := h.db.GetPlanByID(sess.PlanID)
    if err != nil {
        if err != sql.ErrNoRows {
            log.Printf("Error loading plan %s: %v", sess.PlanID, err)
        }
        return 0
    }
    return plan.MonthlyPrice
}

// GetSession returns the wizard state, creating a fresh session when the
// cookie carries none.
func (h *WizardHandler) GetSession(w http.ResponseWriter, r *http.Request) {
    var sess *wizard.Session

    if id := h.cookies.SessionID(r); id != "" {
        existing, err := h.controller.Load(r.Context(), id)
        if err != nil && err != wizard.ErrNoSession {
            log.Printf("Error loading checkout session %s: %v", id, err)
            utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
            return
        }
        sess = existing
    }

    if sess == nil {
        sess = wizard.NewSession(time.Now())
        if err := h.controller.Store().Save(r.Context(), sess); err != nil {
            log.Printf("Error creating checkout session: %v", err)
            utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
            return
        }
        if err := h.cookies.SetSessionID(w, r, sess.ID); err != nil {
            log.Printf("Error setting checkout cookie: %v", err)
        }
    }

    utils.SendSuccessResponse(w, models.APIResponse{
        Status:  "success",
        Message: "Checkout session",
        Data:    h.controller.View(sess, h.monthlyPrice(sess)),
    })
}

type updateSessionRequest struct {
    Account      *models.AccountInfo    `json:"account,omitempty"`
    Billing      *models.BillingAddress `json:"billing,omitempty"`
    Payment      *models.PaymentInfo    `json:"payment,omitempty"`
    PlanName     *string                `json:"planName,omitempty"`
    BillingCycle *models.BillingCycle   `json:"billingCycle,omitempty"`
    AddOns       []addOnQuantity        `json:"addOns,omitempty"`
}

type addOnQuantity struct {
    ID       string `json:"id"`
    Quantity int    `json:"quantity"`
}

// UpdateSession merges form-field updates into the session. Quantities are
// clamped into [0, max]; nothing here advances steps or validates.
func (h *WizardHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
    sess := h.loadSession(w, r)
    if sess == nil {
        return
    }

    var req updateSessionRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, models.ErrCodeGeneral, "Invalid request body")
        return
    }

    if req.Account != nil {
        sess.Account = *req.Account
    }
    if req.Billing != nil {
        sess.Billing = *req.Billing
    }
    if req.Payment != nil {
        sess.Payment = *req.Payment
    }
    if req.PlanName != nil {
        plan, err := h.db.GetPlanByName(*req.PlanName)
        if err == sql.ErrNoRows {
            utils.SendErrorResponse(w, http.StatusNotFound, models.ErrCodeGeneral, "Plan not found")
            return
        }
        if err != nil {
            log.Printf("Error loading plan %q: %v", *req.PlanName, err)
            utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
            return
        }
        sess.PlanID = plan.ID
        sess.PlanName = plan.Name
    }
    if req.BillingCycle != nil {
        if !req.BillingCycle.IsValid() {
            utils.SendErrorResponse(w, http.StatusBadRequest, models.ErrCodeGeneral, "Invalid billing cycle")
            return
        }
        sess.BillingCycle = *req.BillingCycle
    }
    for _, a := range req.AddOns {
        sess.SetAddOnQuantity(a.ID, a.Quantity)
    }

    if err := h.controller.Store().Save(r.Context(), sess); err != nil {
        log.Printf("Error saving checkout session %s: %v", sess.ID, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{
        Status:  "success",
        Message: "Checkout session updated",
        Data:    h.controller.View(sess, h.monthlyPrice(sess)),
    })
}

// Advance validates the current step and moves forward. Field errors come
// back as the structured {field, code} list with a localized summary.
func (h *WizardHandler) Advance(w http.ResponseWriter, r *http.Request) {
    sess := h.loadSession(w, r)
    if sess == nil {
        return
    }

    fieldErrs, err := h.controller.Advance(r.Context(), sess)
    if err == wizard.ErrAtLastStep {
        utils.SendErrorResponse(w, http.StatusBadRequest, models.ErrCodeGeneral, "Already at the final step")
        return
    }
    if err != nil {
        log.Printf("Error advancing session %s: %v", sess.ID, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return
    }

    if len(fieldErrs) > 0 {
        utils.SendFieldErrors(w, http.StatusUnprocessableEntity, localize(r, h.translator, "validation_failed"), fieldErrs)
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{
        Status:  "success",
        Message: "Step advanced",
        Data:    h.controller.View(sess, h.monthlyPrice(sess)),
    })
}

// Back moves one step backwards.
func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
    sess := h.loadSession(w, r)
    if sess == nil {
        return
    }

    if err := h.controller.Back(r.Context(), sess); err != nil {
        if err == wizard.ErrAtFirstStep {
            utils.SendErrorResponse(w, http.StatusBadRequest, models.ErrCodeGeneral, "Already at the first step")
            return
        }
        log.Printf("Error moving session %s back: %v", sess.ID, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{
        Status:  "success",
        Message: "Step moved back",
        Data:    h.controller.View(sess, h.monthlyPrice(sess)),
    })
}
