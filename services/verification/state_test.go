package verification

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

var base = time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

func TestNewStateStartsNotStarted(t *testing.T) {
    s := NewState()

    assert.Equal(t, StatusNotStarted, s.Status)
    assert.True(t, s.CanResend(base))
    assert.False(t, s.CanSubmit(base))
    assert.False(t, s.IsVerified())
}

func TestMarkSentSetsDeadlines(t *testing.T) {
    s := NewState()
    s.MarkSent(base)

    assert.Equal(t, StatusCodeSent, s.Status)
    assert.Equal(t, base.Add(ResendCooldown), s.CooldownUntil)
    assert.Equal(t, base.Add(CodeTTL), s.ExpiresAt)
    assert.True(t, s.CanSubmit(base))
}

func TestResendCooldown(t *testing.T) {
    s := NewState()
    s.MarkSent(base)

    assert.False(t, s.CanResend(base))
    assert.Equal(t, 60, s.ResendRemaining(base))

    halfway := base.Add(30 * time.Second)
    assert.False(t, s.CanResend(halfway))
    assert.Equal(t, 30, s.ResendRemaining(halfway))

    done := base.Add(ResendCooldown)
    assert.True(t, s.CanResend(done))
    assert.Equal(t, 0, s.ResendRemaining(done))
}

func TestTickExpiresSentCode(t *testing.T) {
    s := NewState()
    s.MarkSent(base)

    s.Tick(base.Add(CodeTTL - time.Second))
    assert.Equal(t, StatusCodeSent, s.Status)

    s.Tick(base.Add(CodeTTL + time.Second))
    assert.Equal(t, StatusExpired, s.Status)
    assert.False(t, s.CanSubmit(base.Add(CodeTTL+time.Second)))
}

func TestTickLeavesOtherStatesAlone(t *testing.T) {
    s := NewState()
    s.Tick(base.Add(time.Hour))
    assert.Equal(t, StatusNotStarted, s.Status)

    s.MarkSent(base)
    s.MarkVerified()
    s.Tick(base.Add(time.Hour))
    assert.Equal(t, StatusVerified, s.Status)
}

func TestResendAfterExpiryReissues(t *testing.T) {
    s := NewState()
    s.MarkSent(base)

    expired := base.Add(CodeTTL + time.Minute)
    s.Tick(expired)
    assert.Equal(t, StatusExpired, s.Status)

    s.MarkSent(expired)
    assert.Equal(t, StatusCodeSent, s.Status)
    assert.Equal(t, expired.Add(CodeTTL), s.ExpiresAt)
}

func TestMarkVerifiedClearsDeadlines(t *testing.T) {
    s := NewState()
    s.MarkSent(base)
    s.MarkVerified()

    assert.True(t, s.IsVerified())
    assert.True(t, s.CooldownUntil.IsZero())
    assert.True(t, s.ExpiresAt.IsZero())
    assert.True(t, s.CanResend(base))
}

func TestRecordFailureSurfacesTroubleshootingAtThree(t *testing.T) {
    s := NewState()
    s.MarkSent(base)

    s.RecordFailure()
    s.RecordFailure()
    assert.False(t, s.ShowTroubleshooting)
    assert.Equal(t, 2, s.FailedAttempts)

    s.RecordFailure()
    assert.True(t, s.ShowTroubleshooting)

    // the flag survives a resend
    s.MarkSent(base.Add(2 * time.Minute))
    assert.True(t, s.ShowTroubleshooting)
}

func TestValidCodeFormat(t *testing.T) {
    assert.True(t, ValidCodeFormat("123456"))
    assert.True(t, ValidCodeFormat("000000"))
    assert.False(t, ValidCodeFormat("12345"))
    assert.False(t, ValidCodeFormat("1234567"))
    assert.False(t, ValidCodeFormat("12345a"))
    assert.False(t, ValidCodeFormat(""))
}
