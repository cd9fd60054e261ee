package utils

import (
    "fmt"
    "math"
)

func Round(value float64) float64 {
    return math.Round(value*100) / 100
}

// FormatAmount renders a monetary value for display. Pricing math keeps
// full float precision; rounding happens only at this boundary.
func FormatAmount(value float64) string {
    return fmt.Sprintf("%.2f", Round(value))
}
