package wizard

import (
    "context"
    "errors"
    "fmt"
    "log"
    "time"

    "scholarly-checkout-api/models"
    "scholarly-checkout-api/services/pricing"
    "scholarly-checkout-api/services/verification"
)

var (
    ErrNoSession        = errors.New("no active checkout session")
    ErrInvalidCode      = errors.New("verification code must be 6 digits")
    ErrCodeExpired      = errors.New("verification code expired")
    ErrNoCodeIssued     = errors.New("no verification code has been sent")
    ErrCodeMismatch     = errors.New("verification code does not match")
    ErrResendCooldown   = errors.New("resend cooldown still running")
    ErrSubmitInProgress = errors.New("checkout submission already in progress")
    ErrAtFirstStep      = errors.New("already at the first step")
    ErrAtLastStep       = errors.New("already at the last step")
)

// SessionStore persists wizard sessions. Get returns (nil, nil) for an
// unknown ID.
type SessionStore interface {
    Get(ctx context.Context, id string) (*Session, error)
    Save(ctx context.Context, sess *Session) error
    Delete(ctx context.Context, id string) error
}

// CodeService issues and checks verification codes for a session.
type CodeService interface {
    Issue(ctx context.Context, sessionID, email string) error
    Check(ctx context.Context, sessionID, code string) (bool, error)
    Clear(ctx context.Context, sessionID string) error
}

// Controller owns every wizard state transition. All mutations go through
// it; handlers only decode requests and encode responses.
type Controller struct {
    store SessionStore
    codes CodeService
    now   func() time.Time
}

func NewController(store SessionStore, codes CodeService) *Controller {
    return &Controller{
        store: store,
        codes: codes,
        now:   time.Now,
    }
}

// Advance validates the current step and moves forward on success. The
// returned field errors are nil exactly when the transition happened.
// Moving from the account step issues a verification code unless the user
// had navigated back earlier or is already verified.
func (c *Controller) Advance(ctx context.Context, sess *Session) ([]models.FieldError, error) {
    if sess.CurrentStep >= LastStep {
        return nil, ErrAtLastStep
    }

    now := c.now()
    sess.Verification.Tick(now)

    errs := ValidateStep(sess, sess.CurrentStep, now)
    if len(errs) > 0 {
        sess.StepErrors[sess.CurrentStep] = errs
        if err := c.store.Save(ctx, sess); err != nil {
            return nil, err
        }
        return errs, nil
    }

    delete(sess.StepErrors, sess.CurrentStep)
    from := sess.CurrentStep
    sess.CurrentStep++

    suppressAutoSend := sess.NavigatedBack
    sess.NavigatedBack = false

    if from == StepAccount && !sess.Verification.IsVerified() && !suppressAutoSend {
        if err := c.sendCode(ctx, sess); err != nil {
            log.Printf("Failed to auto-send verification code for session %s: %v", sess.ID, err)
        }
    }

    return nil, c.store.Save(ctx, sess)
}

// Back moves one step backwards. Leaving the payment step for the
// verification step suppresses the next auto-send.
func (c *Controller) Back(ctx context.Context, sess *Session) error {
    if sess.CurrentStep <= FirstStep {
        return ErrAtFirstStep
    }

    if sess.CurrentStep == StepPayment {
        sess.NavigatedBack = true
    }
    sess.CurrentStep--

    return c.store.Save(ctx, sess)
}

// SendCode issues a verification code for the session's email and starts
// both the resend cooldown and the absolute expiry clock.
func (c *Controller) SendCode(ctx context.Context, sess *Session) error {
    if err := c.sendCode(ctx, sess); err != nil {
        return err
    }
    return c.store.Save(ctx, sess)
}

// ResendCode re-issues a code. While the cooldown runs this is a no-op:
// no code is generated, no email queued, no state changed.
func (c *Controller) ResendCode(ctx context.Context, sess *Session) error {
    now := c.now()
    if !sess.Verification.CanResend(now) {
        return ErrResendCooldown
    }

    if err := c.codes.Clear(ctx, sess.ID); err != nil {
        log.Printf("Failed to clear prior verification code for session %s: %v", sess.ID, err)
    }
    if err := c.sendCode(ctx, sess); err != nil {
        return err
    }
    return c.store.Save(ctx, sess)
}

func (c *Controller) sendCode(ctx context.Context, sess *Session) error {
    if err := c.codes.Issue(ctx, sess.ID, sess.Account.Email); err != nil {
        return err
    }
    sess.Verification.MarkSent(c.now())
    return nil
}

// VerifyCode checks a submitted code. Format and expiry are rejected
// locally without touching the stored code. A match marks the session
// verified and, when the user is sitting on the verification step,
// auto-advances to payment.
func (c *Controller) VerifyCode(ctx context.Context, sess *Session, code string) error {
    now := c.now()
    sess.Verification.Tick(now)

    if !verification.ValidCodeFormat(code) {
        return ErrInvalidCode
    }

    switch sess.Verification.Status {
    case verification.StatusExpired:
        return ErrCodeExpired
    case verification.StatusNotStarted:
        return ErrNoCodeIssued
    case verification.StatusVerified:
        return nil
    }

    ok, err := c.codes.Check(ctx, sess.ID, code)
    if err != nil {
        return err
    }
    if !ok {
        sess.Verification.RecordFailure()
        if saveErr := c.store.Save(ctx, sess); saveErr != nil {
            return saveErr
        }
        return ErrCodeMismatch
    }

    sess.Verification.MarkVerified()
    if sess.CurrentStep == StepVerify {
        sess.CurrentStep = StepPayment
        delete(sess.StepErrors, StepVerify)
    }
    return c.store.Save(ctx, sess)
}

// BeginSubmit flips the submitting flag, refusing re-entrant submissions
// while a request is outstanding.
func (c *Controller) BeginSubmit(ctx context.Context, sess *Session) error {
    if sess.Submitting {
        return ErrSubmitInProgress
    }
    sess.Submitting = true
    return c.store.Save(ctx, sess)
}

// EndSubmit clears the submitting flag after the result is known. A
// session that no longer exists in the store stays gone: a completed
// checkout deletes its session, and writing it back here would leave an
// orphaned record holding the payment form.
func (c *Controller) EndSubmit(ctx context.Context, sess *Session) {
    existing, err := c.store.Get(ctx, sess.ID)
    if err != nil {
        log.Printf("Failed to check session %s before clearing submitting flag: %v", sess.ID, err)
        return
    }
    if existing == nil {
        return
    }

    sess.Submitting = false
    if err := c.store.Save(ctx, sess); err != nil {
        log.Printf("Failed to clear submitting flag for session %s: %v", sess.ID, err)
    }
}

// BuildOrder assembles the final checkout payload: account info, billing
// address, payment info, only the add-ons with positive quantity, the
// pre-promo total and, when applied, the promo code exactly as the user
// entered it together with its discount percent.
func (c *Controller) BuildOrder(sess *Session, monthlyPrice float64) models.OrderRequest {
    quote := pricing.Calculate(monthlyPrice, sess.BillingCycle, sess.AddOns,
        pricing.DiscountFraction(sess.Discount))

    order := models.OrderRequest{
        FirstName:       sess.Account.FirstName,
        LastName:        sess.Account.LastName,
        Email:           sess.Account.Email,
        Phone:           sess.Account.Phone,
        InstitutionName: sess.Account.InstitutionName,
        Password:        sess.Account.Password,
        BillingAddress:  sess.Billing,
        PaymentInfo:     sess.Payment,
        PlanID:          sess.PlanID,
        BillingCycle:    sess.BillingCycle,
        AddOns:          sess.SelectedAddOns(),
        TotalAmount:     quote.Subtotal,
        PaymentMethod:   "card",
    }
    if sess.PromoApplied {
        order.PromoCode = sess.PromoCode
        order.Discount = sess.Discount
    }
    return order
}

// StateView is the wizard state as the rendering layer reads it, including
// the live quote and the derived verification counters.
type StateView struct {
    SessionID           string                      `json:"session_id"`
    CurrentStep         int                         `json:"current_step"`
    Account             models.AccountInfo          `json:"account"`
    Billing             models.BillingAddress       `json:"billing"`
    AddOns              []models.AddOn              `json:"add_ons"`
    PlanID              string                      `json:"plan_id"`
    PlanName            string                      `json:"plan_name"`
    BillingCycle        models.BillingCycle         `json:"billing_cycle"`
    PromoApplied        bool                        `json:"promo_applied"`
    PromoCode           string                      `json:"promo_code,omitempty"`
    Discount            int                         `json:"discount"`
    IsEmailVerified     bool                        `json:"is_email_verified"`
    VerificationStatus  verification.Status         `json:"verification_status"`
    ResendTimer         int                         `json:"resend_timer"`
    CodeExpired         bool                        `json:"code_expired"`
    ShowTroubleshooting bool                        `json:"show_troubleshooting"`
    StepErrors          map[int][]models.FieldError `json:"step_errors"`
    Quote               pricing.Quote               `json:"quote"`
}

// View projects the session for API responses. Card number and CVV never
// leave the server; only the account and billing forms echo back.
func (c *Controller) View(sess *Session, monthlyPrice float64) StateView {
    now := c.now()
    sess.Verification.Tick(now)

    return StateView{
        SessionID:           sess.ID,
        CurrentStep:         sess.CurrentStep,
        Account:             sanitizeAccount(sess.Account),
        Billing:             sess.Billing,
        AddOns:              sess.AddOns,
        PlanID:              sess.PlanID,
        PlanName:            sess.PlanName,
        BillingCycle:        sess.BillingCycle,
        PromoApplied:        sess.PromoApplied,
        PromoCode:           sess.PromoCode,
        Discount:            sess.Discount,
        IsEmailVerified:     sess.Verification.IsVerified(),
        VerificationStatus:  sess.Verification.Status,
        ResendTimer:         sess.Verification.ResendRemaining(now),
        CodeExpired:         sess.Verification.Status == verification.StatusExpired,
        ShowTroubleshooting: sess.Verification.ShowTroubleshooting,
        StepErrors:          sess.StepErrors,
        Quote:               sess.Quote(monthlyPrice),
    }
}

func sanitizeAccount(a models.AccountInfo) models.AccountInfo {
    a.Password = ""
    a.ConfirmPassword = ""
    return a
}

// Quote computes the current price breakdown for the session.
func (s *Session) Quote(monthlyPrice float64) pricing.Quote {
    return pricing.Calculate(monthlyPrice, s.BillingCycle, s.AddOns,
        pricing.DiscountFraction(s.Discount))
}

// Store returns the backing session store.
func (c *Controller) Store() SessionStore {
    return c.store
}

// Load fetches a session or reports ErrNoSession.
func (c *Controller) Load(ctx context.Context, id string) (*Session, error) {
    sess, err := c.store.Get(ctx, id)
    if err != nil {
        return nil, fmt.Errorf("failed to load session %s: %v", id, err)
    }
    if sess == nil {
        return nil, ErrNoSession
    }
    return sess, nil
}
