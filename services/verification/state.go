package verification

import (
    "time"
)

// Status is the email-verification lifecycle state. The legal transitions
// are NotStarted -> CodeSent -> (Verified | Expired), with CodeSent
// re-enterable from CodeSent or Expired via resend.
type Status string

const (
    StatusNotStarted Status = "not_started"
    StatusCodeSent   Status = "code_sent"
    StatusVerified   Status = "verified"
    StatusExpired    Status = "expired"
)

const (
    // ResendCooldown is how long a fresh code blocks another send.
    ResendCooldown = 60 * time.Second

    // CodeTTL is the absolute lifetime of an issued code.
    CodeTTL = 10 * time.Minute

    // CodeLength is the number of digits in a code.
    CodeLength = 6

    // troubleshootingThreshold is the consecutive-failure count that
    // surfaces the troubleshooting panel.
    troubleshootingThreshold = 3
)

// State tracks one checkout session's verification lifecycle. Both timers
// are stored as deadlines and evaluated against the clock on access, so
// there is nothing to cancel when a session is abandoned.
type State struct {
    Status              Status    `json:"status"`
    CooldownUntil       time.Time `json:"cooldown_until,omitempty"`
    ExpiresAt           time.Time `json:"expires_at,omitempty"`
    FailedAttempts      int       `json:"failed_attempts"`
    ShowTroubleshooting bool      `json:"show_troubleshooting"`
}

func NewState() State {
    return State{Status: StatusNotStarted}
}

// Tick folds elapsed time into the state: a sent code whose deadline has
// passed becomes Expired. Cooldown display is independent of expiry, so
// CooldownUntil is left alone here.
func (s *State) Tick(now time.Time) {
    if s.Status == StatusCodeSent && now.After(s.ExpiresAt) {
        s.Status = StatusExpired
    }
}

// MarkSent records a fresh code: resets both deadlines and clears a prior
// Expired status. The troubleshooting flag survives resends on purpose.
func (s *State) MarkSent(now time.Time) {
    s.Status = StatusCodeSent
    s.CooldownUntil = now.Add(ResendCooldown)
    s.ExpiresAt = now.Add(CodeTTL)
}

// MarkVerified is terminal; deadlines are cleared.
func (s *State) MarkVerified() {
    s.Status = StatusVerified
    s.CooldownUntil = time.Time{}
    s.ExpiresAt = time.Time{}
}

// RecordFailure counts a server-rejected code. The third consecutive
// failure surfaces the troubleshooting panel but never blocks attempts.
func (s *State) RecordFailure() {
    s.FailedAttempts++
    if s.FailedAttempts >= troubleshootingThreshold {
        s.ShowTroubleshooting = true
    }
}

// CanResend reports whether the resend cooldown has elapsed. A resend
// during the cooldown is a no-op at every layer above.
func (s *State) CanResend(now time.Time) bool {
    return !now.Before(s.CooldownUntil)
}

// ResendRemaining returns whole seconds left on the cooldown, floored at 0.
func (s *State) ResendRemaining(now time.Time) int {
    if s.CanResend(now) {
        return 0
    }
    remaining := int(s.CooldownUntil.Sub(now).Seconds())
    if remaining < 0 {
        return 0
    }
    return remaining
}

// CanSubmit reports whether a code may be sent to the server for checking.
func (s *State) CanSubmit(now time.Time) bool {
    s.Tick(now)
    return s.Status == StatusCodeSent
}

func (s *State) IsVerified() bool {
    return s.Status == StatusVerified
}

// ValidCodeFormat checks the local 6-digit shape before any network call.
func ValidCodeFormat(code string) bool {
    if len(code) != CodeLength {
        return false
    }
    for _, r := range code {
        if r < '0' || r > '9' {
            return false
        }
    }
    return true
}
