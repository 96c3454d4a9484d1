package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is a fixed-point currency amount in cents. Prices round-trip through
// JSON as plain decimal numbers (19.99) parsed from the raw token, so no
// value ever passes through float64 arithmetic.
type Money int64

// ParseMoney parses a decimal amount like "19.99", "$14.99", or "20" into
// cents. At most two fractional digits are allowed.
func ParseMoney(s string) (Money, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "$")
	if raw == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	neg := false
	if strings.HasPrefix(raw, "-") {
		neg = true
		raw = raw[1:]
	}

	whole := raw
	frac := ""
	if idx := strings.IndexByte(raw, '.'); idx >= 0 {
		whole = raw[:idx]
		frac = raw[idx+1:]
	}
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("invalid amount %q: more than two decimal places", s)
	}

	dollars := int64(0)
	if whole != "" {
		var err error
		dollars, err = strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
	}

	cents := int64(0)
	if frac != "" {
		var err error
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		if len(frac) == 1 {
			cents *= 10
		}
	}

	total := dollars*100 + cents
	if neg {
		total = -total
	}
	return Money(total), nil
}

// Cents returns the raw amount in cents.
func (m Money) Cents() int64 {
	return int64(m)
}

// MulQty multiplies a unit amount by a quantity.
func (m Money) MulQty(qty int) Money {
	return m * Money(qty)
}

// String formats the amount as "$19.99".
func (m Money) String() string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// MarshalJSON emits the amount as a bare decimal number (19.99).
func (m Money) MarshalJSON() ([]byte, error) {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return []byte(fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return nil
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
