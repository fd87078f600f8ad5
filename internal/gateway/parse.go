package gateway

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseCoins parses a strictly positive whole coin amount.
func parseCoins(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}
	return v, nil
}

// parseQuantity parses a strictly positive fractional quantity.
func parseQuantity(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("quantity must be positive")
	}
	return v, nil
}

// parseMinutes converts a whole-minute token into a duration.
func parseMinutes(s string) (time.Duration, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid minutes: %q", s)
	}
	return time.Duration(v) * time.Minute, nil
}

// formatQuantity renders a share quantity without trailing zeros, at
// most four decimals.
func formatQuantity(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
