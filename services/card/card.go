package card

import (
    "fmt"
    "strings"
    "time"
)

// Network is the payment card scheme inferred from the leading digits of a
// card number.
type Network string

const (
    NetworkVisa       Network = "visa"
    NetworkMastercard Network = "mastercard"
    NetworkAmex       Network = "amex"
    NetworkUnknown    Network = "unknown"
)

// PAN length bounds used when the network is unknown.
const (
    minPANLength = 13
    maxPANLength = 19
)

// Detect infers the card network from a (possibly partial) card number.
func Detect(number string) Network {
    digits := stripNonDigits(number)
    if digits == "" {
        return NetworkUnknown
    }
    switch digits[0] {
    case '4':
        return NetworkVisa
    case '5':
        return NetworkMastercard
    case '3':
        if len(digits) > 1 && (digits[1] == '4' || digits[1] == '7') {
            return NetworkAmex
        }
    }
    return NetworkUnknown
}

// MaxDigits returns the maximum PAN length accepted while typing.
func (n Network) MaxDigits() int {
    if n == NetworkAmex {
        return 15
    }
    return 16
}

// CVVLength returns the security code length for the network.
func (n Network) CVVLength() int {
    if n == NetworkAmex {
        return 4
    }
    return 3
}

// FormatNumber strips non-digits, truncates to the network maximum and
// inserts display grouping: 4-6-5 for amex, groups of 4 otherwise.
func FormatNumber(input string) string {
    digits := stripNonDigits(input)
    network := Detect(digits)
    if len(digits) > network.MaxDigits() {
        digits = digits[:network.MaxDigits()]
    }

    var groups []string
    if network == NetworkAmex {
        for _, size := range []int{4, 6, 5} {
            if digits == "" {
                break
            }
            if size > len(digits) {
                size = len(digits)
            }
            groups = append(groups, digits[:size])
            digits = digits[size:]
        }
    } else {
        for digits != "" {
            size := 4
            if size > len(digits) {
                size = len(digits)
            }
            groups = append(groups, digits[:size])
            digits = digits[size:]
        }
    }
    return strings.Join(groups, " ")
}

// FormatCVV strips non-digits and truncates to the network's CVV length.
func FormatCVV(input string, network Network) string {
    digits := stripNonDigits(input)
    if len(digits) > network.CVVLength() {
        digits = digits[:network.CVVLength()]
    }
    return digits
}

// FormatExpiry normalizes raw expiry input into MM/YY as the user types:
// non-digits removed, a month over 12 clamped to "12", the slash inserted
// once a third digit appears. Incomplete input is returned as typed.
func FormatExpiry(input string) string {
    digits := stripNonDigits(input)
    if len(digits) > 4 {
        digits = digits[:4]
    }

    if len(digits) >= 2 {
        month := digits[:2]
        if month > "12" {
            month = "12"
        }
        digits = month + digits[2:]
    }

    if len(digits) >= 3 {
        return digits[:2] + "/" + digits[2:]
    }
    return digits
}

// ValidateNumber checks the PAN on step submit: exact length for a known
// network (13-19 for unknown), then the Luhn checksum.
func ValidateNumber(number string) bool {
    digits := stripNonDigits(number)
    network := Detect(digits)

    switch network {
    case NetworkUnknown:
        if len(digits) < minPANLength || len(digits) > maxPANLength {
            return false
        }
    default:
        if len(digits) != network.MaxDigits() {
            return false
        }
    }
    return validateLuhn(digits)
}

// ValidateCVV checks the security code length for the network.
func ValidateCVV(cvv string, network Network) bool {
    want := network.CVVLength()
    if len(cvv) != want {
        return false
    }
    for _, r := range cvv {
        if r < '0' || r > '9' {
            return false
        }
    }
    return true
}

// ValidExpiryFormat reports whether the input parses as MM/YY, independent
// of whether the date is in the past.
func ValidExpiryFormat(expiry string) bool {
    _, err := time.Parse("01/06", expiry)
    return err == nil
}

// ValidateExpiry checks MM/YY format and that the card has not expired as
// of now. The month is inclusive: a card expiring this month is valid
// through the end of the month.
func ValidateExpiry(expiry string, now time.Time) bool {
    expiryTime, err := time.Parse("01/06", expiry)
    if err != nil {
        return false
    }

    // Last instant of the expiry month.
    expiryTime = time.Date(
        expiryTime.Year(),
        expiryTime.Month()+1,
        0,
        23,
        59,
        59,
        0,
        time.UTC,
    )

    return expiryTime.After(now)
}

// MaskNumber keeps only the last four digits for storage and display.
func MaskNumber(number string) string {
    digits := stripNonDigits(number)
    if len(digits) < 4 {
        return digits
    }
    return fmt.Sprintf("****%s", digits[len(digits)-4:])
}

func validateLuhn(cardNumber string) bool {
    sum := 0
    isEven := len(cardNumber)%2 == 0

    for i, r := range cardNumber {
        digit := int(r - '0')

        if digit < 0 || digit > 9 {
            return false
        }

        if isEven == (i%2 == 0) {
            digit *= 2
            if digit > 9 {
                digit -= 9
            }
        }
        sum += digit
    }

    return sum%10 == 0
}

func stripNonDigits(s string) string {
    var b strings.Builder
    for _, r := range s {
        if r >= '0' && r <= '9' {
            b.WriteByte(byte(r))
        }
    }
    return b.String()
}
