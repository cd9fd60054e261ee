package wizard

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    "github.com/go-redis/redis/v8"
    "github.com/google/uuid"

    "scholarly-checkout-api/models"
    "scholarly-checkout-api/services/verification"
)

const (
    StepAccount = 1
    StepVerify  = 2
    StepPayment = 3
    StepBilling = 4

    FirstStep = StepAccount
    LastStep  = StepBilling
)

// SessionTTL is how long an idle checkout session survives in redis.
const SessionTTL = 2 * time.Hour

// Session is the whole wizard state for one checkout. One session per
// browser tab; the ID travels in a cookie and nothing is shared between
// sessions, so there is no concurrent mutation path to guard.
type Session struct {
    ID           string                      `json:"id"`
    CurrentStep  int                         `json:"current_step"`
    Account      models.AccountInfo          `json:"account"`
    Billing      models.BillingAddress       `json:"billing"`
    Payment      models.PaymentInfo          `json:"payment"`
    PlanID       string                      `json:"plan_id"`
    PlanName     string                      `json:"plan_name"`
    BillingCycle models.BillingCycle         `json:"billing_cycle"`
    AddOns       []models.AddOn              `json:"add_ons"`
    PromoCode    string                      `json:"promo_code"`
    PromoApplied bool                        `json:"promo_applied"`
    Discount     int                         `json:"discount"`
    Verification verification.State          `json:"verification"`
    NavigatedBack bool                       `json:"navigated_back"`
    Submitting   bool                        `json:"submitting"`
    StepErrors   map[int][]models.FieldError `json:"step_errors"`
    CreatedAt    time.Time                   `json:"created_at"`
    UpdatedAt    time.Time                   `json:"updated_at"`
}

func NewSession(now time.Time) *Session {
    return &Session{
        ID:           uuid.New().String(),
        CurrentStep:  FirstStep,
        BillingCycle: models.BillingMonthly,
        AddOns:       models.DefaultAddOns(),
        Verification: verification.NewState(),
        StepErrors:   make(map[int][]models.FieldError),
        CreatedAt:    now,
        UpdatedAt:    now,
    }
}

// SetAddOnQuantity clamps the quantity into [0, MaxQuantity] for the given
// add-on. Unknown IDs are ignored.
func (s *Session) SetAddOnQuantity(addOnID string, quantity int) {
    for i := range s.AddOns {
        if s.AddOns[i].ID != addOnID {
            continue
        }
        if quantity < 0 {
            quantity = 0
        }
        if quantity > s.AddOns[i].MaxQuantity {
            quantity = s.AddOns[i].MaxQuantity
        }
        s.AddOns[i].Quantity = quantity
        return
    }
}

// SelectedAddOns returns only add-ons with a positive quantity, the subset
// that goes into the final order payload.
func (s *Session) SelectedAddOns() []models.AddOn {
    var selected []models.AddOn
    for _, a := range s.AddOns {
        if a.Quantity > 0 {
            selected = append(selected, a)
        }
    }
    return selected
}

// ClearPromo drops an applied promo, keeping the discount invariant: a
// non-zero discount only ever exists alongside PromoApplied.
func (s *Session) ClearPromo() {
    s.PromoCode = ""
    s.PromoApplied = false
    s.Discount = 0
}

// Store persists sessions in redis as JSON with a sliding TTL.
type Store struct {
    client *redis.Client
}

func NewStore(client *redis.Client) *Store {
    return &Store{client: client}
}

func sessionKey(id string) string {
    return "checkout:session:" + id
}

func (st *Store) Get(ctx context.Context, id string) (*Session, error) {
    data, err := st.client.Get(ctx, sessionKey(id)).Result()
    if err == redis.Nil {
        return nil, nil
    }
    if err != nil {
        return nil, fmt.Errorf("failed to load checkout session: %v", err)
    }

    var sess Session
    if err := json.Unmarshal([]byte(data), &sess); err != nil {
        return nil, fmt.Errorf("failed to decode checkout session: %v", err)
    }
    if sess.StepErrors == nil {
        sess.StepErrors = make(map[int][]models.FieldError)
    }
    return &sess, nil
}

func (st *Store) Save(ctx context.Context, sess *Session) error {
    sess.UpdatedAt = time.Now()

    data, err := json.Marshal(sess)
    if err != nil {
        return fmt.Errorf("failed to encode checkout session: %v", err)
    }

    if err := st.client.Set(ctx, sessionKey(sess.ID), data, SessionTTL).Err(); err != nil {
        return fmt.Errorf("failed to save checkout session: %v", err)
    }
    return nil
}

func (st *Store) Delete(ctx context.Context, id string) error {
    if err := st.client.Del(ctx, sessionKey(id)).Err(); err != nil {
        return fmt.Errorf("failed to delete checkout session: %v", err)
    }
    return nil
}
