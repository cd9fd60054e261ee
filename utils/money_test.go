package utils

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
    assert.Equal(t, 470.40, Round(470.4000000000001))
    assert.Equal(t, 48.64, Round(48.644))
    assert.Equal(t, 48.65, Round(48.645000001))
    assert.Equal(t, 0.0, Round(0))
}

func TestFormatAmount(t *testing.T) {
    assert.Equal(t, "470.40", FormatAmount(470.4))
    assert.Equal(t, "49.00", FormatAmount(49))
    assert.Equal(t, "48.64", FormatAmount(48.644))
}

func TestGenerateVerificationCode(t *testing.T) {
    seen := make(map[string]bool)
    for i := 0; i < 20; i++ {
        code := GenerateVerificationCode()
        assert.Len(t, code, 6)
        for _, r := range code {
            assert.True(t, r >= '0' && r <= '9')
        }
        seen[code] = true
    }
    // 20 draws from a million values should not all collide
    assert.Greater(t, len(seen), 1)
}

func TestHashPasswordIsDeterministic(t *testing.T) {
    a := HashPassword("correct-horse")
    b := HashPassword("correct-horse")
    c := HashPassword("different")

    assert.Equal(t, a, b)
    assert.NotEqual(t, a, c)
    assert.Len(t, a, 64)
}
