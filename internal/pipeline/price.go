package pipeline

import (
	"regexp"
	"strconv"
)

var nonDigitRe = regexp.MustCompile(`[^0-9]`)

// CleanPrice strips everything but digits from a register price string
// ("€123,456.00" and friends) and returns the amount in euro. The register
// encodes prices with two trailing cent digits, hence the division.
// Returns nil when no digits remain.
func CleanPrice(price string) *float64 {
	digits := nonDigitRe.ReplaceAllString(price, "")
	if digits == "" {
		return nil
	}

	n, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return nil
	}

	v := n / 100
	return &v
}
