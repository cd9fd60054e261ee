package handlers

import (
    "database/sql"
    "encoding/json"
    "log"
    "net/http"
    "time"

    "github.com/google/uuid"

    "scholarly-checkout-api/database"
    "scholarly-checkout-api/i18n"
    "scholarly-checkout-api/models"
    "scholarly-checkout-api/queue"
    "scholarly-checkout-api/services/card"
    "scholarly-checkout-api/services/payment"
    "scholarly-checkout-api/services/wizard"
    "scholarly-checkout-api/utils"
)

// CheckoutHandler runs the terminal submission: final validation, charge,
// account creation and confirmation email.
type CheckoutHandler struct {
    db             *database.Connection
    controller     *wizard.Controller
    paymentService *payment.Service
    queue          *queue.Queue
    cookies        *SessionCookies
    translator     *i18n.Translator
}

func NewCheckoutHandler(db *database.Connection, controller *wizard.Controller,
    ps *payment.Service, q *queue.Queue, cookies *SessionCookies,
    translator *i18n.Translator) *CheckoutHandler {
    return &CheckoutHandler{
        db:             db,
        controller:     controller,
        paymentService: ps,
        queue:          q,
        cookies:        cookies,
        translator:     translator,
    }
}

// Submit finalizes the checkout from step 4.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
    requestID := uuid.New().String()

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

    log.Printf("[RequestID: %s] Starting checkout submission for session %s", requestID, sess.ID)

    // Re-validate the billing step and the verification gate before any
    // money moves. Failures jump the wizard back to the offending step.
    if fieldErrs := h.revalidate(sess); len(fieldErrs) > 0 {
        if saveErr := h.controller.Store().Save(r.Context(), sess); saveErr != nil {
            log.Printf("[RequestID: %s] Error saving session after validation: %v", requestID, saveErr)
        }
        utils.SendFieldErrors(w, http.StatusUnprocessableEntity, localize(r, h.translator, "validation_failed"), fieldErrs)
        return
    }

    if err := h.controller.BeginSubmit(r.Context(), sess); err != nil {
        utils.SendErrorResponse(w, http.StatusConflict, models.ErrCodeSubmitInProgress, localize(r, h.translator, models.ErrCodeSubmitInProgress))
        return
    }
    defer h.controller.EndSubmit(r.Context(), sess)

    locked, err := h.db.LockSubmit(sess.ID)
    if err != nil {
        log.Printf("[RequestID: %s] Error acquiring submit lock: %v", requestID, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return
    }
    if !locked {
        utils.SendErrorResponse(w, http.StatusConflict, models.ErrCodeSubmitInProgress, localize(r, h.translator, models.ErrCodeSubmitInProgress))
        return
    }
    defer func() {
        if err := h.db.ReleaseSubmitLock(sess.ID); err != nil {
            log.Printf("[RequestID: %s] Error releasing submit lock: %v", requestID, err)
        }
    }()

    exists, err := h.db.EmailExists(sess.Account.Email)
    if err != nil {
        log.Printf("[RequestID: %s] Error checking email existence: %v", requestID, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return
    }
    if exists {
        utils.SendErrorResponse(w, http.StatusConflict, models.ErrCodeEmailExists, localize(r, h.translator, models.ErrCodeEmailExists))
        return
    }

    plan, err := h.db.GetPlanByID(sess.PlanID)
    if err == sql.ErrNoRows {
        utils.SendErrorResponse(w, http.StatusUnprocessableEntity, models.ErrCodeGeneral, "Selected plan no longer exists")
        return
    }
    if err != nil {
        log.Printf("[RequestID: %s] Error loading plan %s: %v", requestID, sess.PlanID, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return
    }

    order := h.controller.BuildOrder(sess, plan.MonthlyPrice)
    quote := sess.Quote(plan.MonthlyPrice)
    chargeAmount := utils.Round(quote.Total)

    if !h.paymentService.ValidateCard(&sess.Payment) {
        sess.CurrentStep = wizard.StepPayment
        if saveErr := h.controller.Store().Save(r.Context(), sess); saveErr != nil {
            log.Printf("[RequestID: %s] Error saving session after card check: %v", requestID, saveErr)
        }
        utils.SendFieldErrors(w, http.StatusUnprocessableEntity, localize(r, h.translator, "validation_failed"),
            []models.FieldError{{Field: "cardNumber", Code: models.ErrInvalidCardNumber}})
        return
    }

    chargeResp, err := h.paymentService.Charge(r.Context(), &order, chargeAmount, sess.ID)
    if err == payment.ErrGatewayTimeout {
        log.Printf("[RequestID: %s] Gateway timeout charging session %s", requestID, sess.ID)
        utils.SendErrorResponse(w, http.StatusGatewayTimeout, models.ErrCodeGatewayTimeout, localize(r, h.translator, models.ErrCodeGatewayTimeout))
        return
    }
    if err != nil {
        log.Printf("[RequestID: %s] Error charging session %s: %v", requestID, sess.ID, err)
        utils.SendErrorResponse(w, http.StatusBadGateway, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return
    }
    if !chargeResp.Success {
        utils.SendErrorResponse(w, http.StatusPaymentRequired, models.ErrCodePaymentDeclined, localize(r, h.translator, models.ErrCodePaymentDeclined))
        return
    }

    subResp, err := h.paymentService.CreateSubscription(r.Context(), chargeResp.TransactionID,
        sess.ID, chargeAmount, sess.BillingCycle)
    if err != nil {
        log.Printf("[RequestID: %s] Error creating gateway subscription: %v", requestID, err)
        utils.SendErrorResponse(w, http.StatusBadGateway, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return
    }

    result, err := h.persistOrder(sess, plan, &order, chargeResp.TransactionID, subResp.SubscriptionID, chargeAmount)
    if err != nil {
        log.Printf("[RequestID: %s] Error persisting order for session %s: %v", requestID, sess.ID, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, localize(r, h.translator, models.ErrCodeGeneral))
        return
    }

    confirmErr := h.queue.Enqueue(r.Context(), queue.JobTypeSendOrderConfirmation, map[string]interface{}{
        "email":      result.User.Email,
        "first_name": result.User.FirstName,
        "plan_name":  plan.Name,
        "total":      utils.FormatAmount(chargeAmount),
    })
    if confirmErr != nil {
        // The order stands; delivery failures are retried by the queue or
        // lost without blocking the response.
        log.Printf("[RequestID: %s] Error enqueueing confirmation email: %v", requestID, confirmErr)
    }

    if err := h.controller.Store().Delete(r.Context(), sess.ID); err != nil {
        log.Printf("[RequestID: %s] Error deleting completed session %s: %v", requestID, sess.ID, err)
    }
    h.cookies.ClearSessionID(w, r)

    log.Printf("[RequestID: %s] Checkout completed for session %s (order for %s)", requestID, sess.ID, result.User.Email)

    utils.SendSuccessResponse(w, models.APIResponse{
        Status:  "success",
        Message: localize(r, h.translator, "order_created"),
        Data:    result,
    })
}

// revalidate runs the billing validator and the verification gate, and
// moves the wizard back to the first offending step.
func (h *CheckoutHandler) revalidate(sess *wizard.Session) []models.FieldError {
    if !sess.Verification.IsVerified() {
        sess.CurrentStep = wizard.StepVerify
        return []models.FieldError{{Field: "verificationCode", Code: models.ErrEmailNotVerified}}
    }

    now := time.Now()
    if errs := wizard.ValidateStep(sess, wizard.StepPayment, now); len(errs) > 0 {
        sess.CurrentStep = wizard.StepPayment
        sess.StepErrors[wizard.StepPayment] = errs
        return errs
    }
    if errs := wizard.ValidateStep(sess, wizard.StepBilling, now); len(errs) > 0 {
        sess.CurrentStep = wizard.StepBilling
        sess.StepErrors[wizard.StepBilling] = errs
        return errs
    }
    return nil
}

// persistOrder writes user, address, payment method, subscription and order
// in one transaction.
func (h *CheckoutHandler) persistOrder(sess *wizard.Session, plan *models.Plan,
    order *models.OrderRequest, transactionID, gatewaySubID string, chargeAmount float64) (*models.OrderResult, error) {

    tx, err := h.db.BeginTransaction()
    if err != nil {
        return nil, err
    }
    defer tx.Rollback()

    user := models.OrderUser{
        ID:              uuid.New().String(),
        FirstName:       order.FirstName,
        LastName:        order.LastName,
        Email:           order.Email,
        InstitutionName: order.InstitutionName,
    }

    if err := tx.SaveUser(&user, order.Phone, utils.HashPassword(order.Password)); err != nil {
        return nil, err
    }
    if err := tx.SaveBillingAddress(user.ID, &order.BillingAddress); err != nil {
        return nil, err
    }
    if err := tx.SavePaymentMethod(user.ID, card.MaskNumber(order.PaymentInfo.CardNumber), order.PaymentInfo.ExpiryDate); err != nil {
        return nil, err
    }

    renewDate := time.Now().AddDate(0, 1, 0)
    if sess.BillingCycle == models.BillingAnnual {
        renewDate = time.Now().AddDate(1, 0, 0)
    }

    sub := models.OrderSubscription{
        ID:           uuid.New().String(),
        PlanID:       plan.ID,
        PlanName:     plan.Name,
        BillingCycle: sess.BillingCycle,
        TotalAmount:  chargeAmount,
        RenewDate:    renewDate.Format("2006-01-02"),
    }
    if err := tx.SaveSubscription(user.ID, gatewaySubID, &sub); err != nil {
        return nil, err
    }

    addOnsJSON, err := json.Marshal(order.AddOns)
    if err != nil {
        return nil, err
    }

    orderID := uuid.New().String()
    if err := tx.SaveOrder(orderID, user.ID, sub.ID, transactionID, order, string(addOnsJSON)); err != nil {
        return nil, err
    }

    if err := tx.Commit(); err != nil {
        return nil, err
    }

    return &models.OrderResult{User: user, Subscription: sub}, nil
}
