package card

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
    tests := []struct {
        number string
        want   Network
    }{
        {"4111111111111111", NetworkVisa},
        {"4", NetworkVisa},
        {"5555555555554444", NetworkMastercard},
        {"371449635398431", NetworkAmex},
        {"341111111111111", NetworkAmex},
        {"361111111111111", NetworkUnknown},
        {"6011000990139424", NetworkUnknown},
        {"", NetworkUnknown},
        {"4111 1111 1111 1111", NetworkVisa},
    }

    for _, tt := range tests {
        assert.Equal(t, tt.want, Detect(tt.number), "number %q", tt.number)
    }
}

func TestNetworkLengths(t *testing.T) {
    assert.Equal(t, 16, NetworkVisa.MaxDigits())
    assert.Equal(t, 16, NetworkMastercard.MaxDigits())
    assert.Equal(t, 15, NetworkAmex.MaxDigits())

    assert.Equal(t, 3, NetworkVisa.CVVLength())
    assert.Equal(t, 3, NetworkMastercard.CVVLength())
    assert.Equal(t, 4, NetworkAmex.CVVLength())
}

func TestFormatNumber(t *testing.T) {
    tests := []struct {
        input string
        want  string
    }{
        {"4111111111111111", "4111 1111 1111 1111"},
        {"41111111", "4111 1111"},
        {"411111111", "4111 1111 1"},
        // amex groups 4-6-5
        {"371449635398431", "3714 496353 98431"},
        {"37144963", "3714 4963"},
        // overflow digits are dropped at the network max
        {"41111111111111119999", "4111 1111 1111 1111"},
        {"3714496353984319999", "3714 496353 98431"},
        // non-digits stripped before grouping
        {"4111-1111-1111-1111", "4111 1111 1111 1111"},
        {"", ""},
    }

    for _, tt := range tests {
        assert.Equal(t, tt.want, FormatNumber(tt.input), "input %q", tt.input)
    }
}

func TestFormatCVV(t *testing.T) {
    assert.Equal(t, "123", FormatCVV("1234", NetworkVisa))
    assert.Equal(t, "1234", FormatCVV("12345", NetworkAmex))
    assert.Equal(t, "12", FormatCVV("1a2b", NetworkVisa))
}

func TestFormatExpiry(t *testing.T) {
    tests := []struct {
        input string
        want  string
    }{
        {"1", "1"},
        {"12", "12"},
        {"123", "12/3"},
        {"1225", "12/25"},
        // month above 12 clamps
        {"13", "12"},
        {"1325", "12/25"},
        {"99", "12"},
        // non-digits stripped, extra digits dropped
        {"12/25", "12/25"},
        {"122536", "12/25"},
        {"", ""},
    }

    for _, tt := range tests {
        assert.Equal(t, tt.want, FormatExpiry(tt.input), "input %q", tt.input)
    }
}

func TestValidateNumber(t *testing.T) {
    valid := []string{
        "4111111111111111",
        "4012888888881881",
        "5555555555554444",
        "371449635398431",
        "4111 1111 1111 1111",
    }
    for _, number := range valid {
        assert.True(t, ValidateNumber(number), "number %q", number)
    }

    invalid := []string{
        "4111111111111112", // bad checksum
        "411111111111111",  // visa must be 16 digits
        "37144963539843",   // amex must be 15 digits
        "",
        "12345",
    }
    for _, number := range invalid {
        assert.False(t, ValidateNumber(number), "number %q", number)
    }
}

func TestValidateCVV(t *testing.T) {
    assert.True(t, ValidateCVV("123", NetworkVisa))
    assert.True(t, ValidateCVV("1234", NetworkAmex))
    assert.False(t, ValidateCVV("1234", NetworkVisa))
    assert.False(t, ValidateCVV("123", NetworkAmex))
    assert.False(t, ValidateCVV("12a", NetworkVisa))
    assert.False(t, ValidateCVV("", NetworkVisa))
}

func TestValidExpiryFormat(t *testing.T) {
    assert.True(t, ValidExpiryFormat("12/25"))
    assert.True(t, ValidExpiryFormat("01/20"))
    assert.False(t, ValidExpiryFormat("13/25"))
    assert.False(t, ValidExpiryFormat("1225"))
    assert.False(t, ValidExpiryFormat(""))
}

func TestValidateExpiry(t *testing.T) {
    now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

    assert.True(t, ValidateExpiry("12/25", now))
    // current month is valid through its last day
    assert.True(t, ValidateExpiry("06/25", now))
    assert.False(t, ValidateExpiry("05/25", now))
    assert.False(t, ValidateExpiry("01/20", now))
    assert.False(t, ValidateExpiry("13/25", now))
    assert.False(t, ValidateExpiry("1225", now))
    assert.False(t, ValidateExpiry("", now))
}

func TestMaskNumber(t *testing.T) {
    assert.Equal(t, "****1111", MaskNumber("4111111111111111"))
    assert.Equal(t, "****8431", MaskNumber("3714 496353 98431"))
    assert.Equal(t, "411", MaskNumber("411"))
}
