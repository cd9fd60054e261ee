package wizard

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "scholarly-checkout-api/services/verification"
)

type memoryStore struct {
    sessions map[string]*Session
}

func newMemoryStore() *memoryStore {
    return &memoryStore{sessions: make(map[string]*Session)}
}

func (m *memoryStore) Get(ctx context.Context, id string) (*Session, error) {
    sess, ok := m.sessions[id]
    if !ok {
        return nil, nil
    }
    return sess, nil
}

func (m *memoryStore) Save(ctx context.Context, sess *Session) error {
    m.sessions[sess.ID] = sess
    return nil
}

func (m *memoryStore) Delete(ctx context.Context, id string) error {
    delete(m.sessions, id)
    return nil
}

type memoryCodes struct {
    codes      map[string]string
    next       string
    issued     int
    checkCalls int
}

func newMemoryCodes() *memoryCodes {
    return &memoryCodes{codes: make(map[string]string), next: "123456"}
}

func (m *memoryCodes) Issue(ctx context.Context, sessionID, email string) error {
    m.issued++
    m.codes[sessionID] = m.next
    return nil
}

func (m *memoryCodes) Check(ctx context.Context, sessionID, code string) (bool, error) {
    m.checkCalls++
    stored, ok := m.codes[sessionID]
    if !ok || stored != code {
        return false, nil
    }
    delete(m.codes, sessionID)
    return true, nil
}

func (m *memoryCodes) Clear(ctx context.Context, sessionID string) error {
    delete(m.codes, sessionID)
    return nil
}

// newTestController wires a controller onto in-memory fakes with a
// controllable clock.
func newTestController() (*Controller, *memoryStore, *memoryCodes, *time.Time) {
    store := newMemoryStore()
    codes := newMemoryCodes()
    c := NewController(store, codes)

    clock := testNow
    c.now = func() time.Time { return clock }
    return c, store, codes, &clock
}

func accountSession(t *testing.T, store *memoryStore) *Session {
    t.Helper()
    sess := NewSession(testNow)
    sess.Account = validAccount()
    require.NoError(t, store.Save(context.Background(), sess))
    return sess
}

func TestAdvanceFromAccountAutoSendsCode(t *testing.T) {
    c, store, codes, _ := newTestController()
    sess := accountSession(t, store)

    fieldErrs, err := c.Advance(context.Background(), sess)

    require.NoError(t, err)
    assert.Empty(t, fieldErrs)
    assert.Equal(t, StepVerify, sess.CurrentStep)
    assert.Equal(t, 1, codes.issued)
    assert.Equal(t, verification.StatusCodeSent, sess.Verification.Status)
}

func TestAdvanceWithFieldErrorsStaysOnStep(t *testing.T) {
    c, store, codes, _ := newTestController()
    sess := NewSession(testNow)
    require.NoError(t, store.Save(context.Background(), sess))

    fieldErrs, err := c.Advance(context.Background(), sess)

    require.NoError(t, err)
    assert.NotEmpty(t, fieldErrs)
    assert.Equal(t, StepAccount, sess.CurrentStep)
    assert.NotEmpty(t, sess.StepErrors[StepAccount])
    assert.Zero(t, codes.issued)
}

func TestAdvanceSkipsAutoSendWhenVerified(t *testing.T) {
    c, store, codes, _ := newTestController()
    sess := accountSession(t, store)
    sess.Verification.MarkSent(testNow)
    sess.Verification.MarkVerified()

    _, err := c.Advance(context.Background(), sess)

    require.NoError(t, err)
    assert.Equal(t, StepVerify, sess.CurrentStep)
    assert.Zero(t, codes.issued)
}

func TestBackFromPaymentSuppressesExactlyOneAutoSend(t *testing.T) {
    c, store, codes, _ := newTestController()
    ctx := context.Background()

    sess := accountSession(t, store)
    sess.CurrentStep = StepPayment
    sess.Verification.MarkSent(testNow)

    require.NoError(t, c.Back(ctx, sess))
    assert.Equal(t, StepVerify, sess.CurrentStep)
    assert.True(t, sess.NavigatedBack)

    require.NoError(t, c.Back(ctx, sess))
    assert.Equal(t, StepAccount, sess.CurrentStep)

    // The advance right after navigating back does not re-send.
    fieldErrs, err := c.Advance(ctx, sess)
    require.NoError(t, err)
    assert.Empty(t, fieldErrs)
    assert.Equal(t, StepVerify, sess.CurrentStep)
    assert.Zero(t, codes.issued)
    assert.False(t, sess.NavigatedBack)

    // The suppression is spent: a plain back-and-forward sends again.
    require.NoError(t, c.Back(ctx, sess))
    _, err = c.Advance(ctx, sess)
    require.NoError(t, err)
    assert.Equal(t, 1, codes.issued)
}

func TestVerifyCodeMatchAutoAdvancesToPayment(t *testing.T) {
    c, store, codes, _ := newTestController()
    ctx := context.Background()

    sess := accountSession(t, store)
    sess.CurrentStep = StepVerify
    require.NoError(t, c.SendCode(ctx, sess))

    err := c.VerifyCode(ctx, sess, codes.next)

    require.NoError(t, err)
    assert.True(t, sess.Verification.IsVerified())
    assert.Equal(t, StepPayment, sess.CurrentStep)
    assert.Empty(t, sess.StepErrors[StepVerify])
}

func TestVerifyCodeExpiredRejectedWithoutCodeCheck(t *testing.T) {
    c, store, codes, clock := newTestController()
    ctx := context.Background()

    sess := accountSession(t, store)
    sess.CurrentStep = StepVerify
    require.NoError(t, c.SendCode(ctx, sess))

    *clock = testNow.Add(verification.CodeTTL + time.Second)

    err := c.VerifyCode(ctx, sess, codes.next)

    assert.Equal(t, ErrCodeExpired, err)
    assert.Zero(t, codes.checkCalls)
    assert.Equal(t, verification.StatusExpired, sess.Verification.Status)
}

func TestVerifyCodeBeforeSendRejectedLocally(t *testing.T) {
    c, store, codes, _ := newTestController()
    sess := accountSession(t, store)
    sess.CurrentStep = StepVerify

    err := c.VerifyCode(context.Background(), sess, "123456")

    assert.Equal(t, ErrNoCodeIssued, err)
    assert.Zero(t, codes.checkCalls)
}

func TestVerifyCodeBadFormatRejectedLocally(t *testing.T) {
    c, store, codes, _ := newTestController()
    ctx := context.Background()

    sess := accountSession(t, store)
    require.NoError(t, c.SendCode(ctx, sess))

    for _, code := range []string{"12345", "12345a", ""} {
        assert.Equal(t, ErrInvalidCode, c.VerifyCode(ctx, sess, code), "code %q", code)
    }
    assert.Zero(t, codes.checkCalls)
}

func TestVerifyCodeMismatchCountsFailures(t *testing.T) {
    c, store, _, _ := newTestController()
    ctx := context.Background()

    sess := accountSession(t, store)
    sess.CurrentStep = StepVerify
    require.NoError(t, c.SendCode(ctx, sess))

    for i := 1; i <= 3; i++ {
        err := c.VerifyCode(ctx, sess, "000000")
        assert.Equal(t, ErrCodeMismatch, err)
        assert.Equal(t, i, sess.Verification.FailedAttempts)
    }
    assert.True(t, sess.Verification.ShowTroubleshooting)
    assert.Equal(t, StepVerify, sess.CurrentStep)
}

func TestResendDuringCooldownIsNoOp(t *testing.T) {
    c, store, codes, clock := newTestController()
    ctx := context.Background()

    sess := accountSession(t, store)
    require.NoError(t, c.SendCode(ctx, sess))
    assert.Equal(t, 1, codes.issued)

    err := c.ResendCode(ctx, sess)
    assert.Equal(t, ErrResendCooldown, err)
    assert.Equal(t, 1, codes.issued)

    *clock = testNow.Add(verification.ResendCooldown)
    require.NoError(t, c.ResendCode(ctx, sess))
    assert.Equal(t, 2, codes.issued)
}

func TestEndSubmitDoesNotRestoreDeletedSession(t *testing.T) {
    c, store, _, _ := newTestController()
    ctx := context.Background()

    sess := accountSession(t, store)
    require.NoError(t, c.BeginSubmit(ctx, sess))

    // A completed checkout deletes its session before the deferred
    // EndSubmit runs.
    require.NoError(t, store.Delete(ctx, sess.ID))
    c.EndSubmit(ctx, sess)

    got, err := store.Get(ctx, sess.ID)
    require.NoError(t, err)
    assert.Nil(t, got)
}

func TestEndSubmitClearsFlagOnLiveSession(t *testing.T) {
    c, store, _, _ := newTestController()
    ctx := context.Background()

    sess := accountSession(t, store)
    require.NoError(t, c.BeginSubmit(ctx, sess))
    assert.True(t, sess.Submitting)

    assert.Equal(t, ErrSubmitInProgress, c.BeginSubmit(ctx, sess))

    c.EndSubmit(ctx, sess)
    assert.False(t, sess.Submitting)

    got, err := store.Get(ctx, sess.ID)
    require.NoError(t, err)
    require.NotNil(t, got)
    assert.False(t, got.Submitting)
}
