// Package money holds the currency and rounding rules shared by every
// component that handles prices.
package money

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code.
type Currency string

// EUR is the only currency providers quote in.
const EUR Currency = "EUR"

// Common errors
var (
	ErrEmptyAmount    = errors.New("money: empty amount")
	ErrInvalidAmount  = errors.New("money: amount is not numeric")
	ErrNegativeAmount = errors.New("money: negative amount")
)

// CentsPlaces is the scale prices are rounded to.
const CentsPlaces = 2

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// ParseAmount extracts a non-negative amount from text that may carry a
// currency suffix, e.g. "350 EUR". Every character other than digits and
// dots is stripped before parsing.
func ParseAmount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	// A minus sign anywhere would otherwise be stripped with the suffix.
	if strings.Contains(s, "-") {
		return decimal.Zero, ErrNegativeAmount
	}
	cleaned := nonNumeric.ReplaceAllString(s, "")
	if cleaned == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseStrict parses a plain decimal number, rejecting suffixes.
func ParseStrict(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return d, nil
}

// RoundHalfUp rounds to the given places with ties going up. Amounts are
// never negative, so decimal's half-away-from-zero rounding is equivalent.
func RoundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// RoundCents rounds to two decimal places, half-up.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return RoundHalfUp(d, CentsPlaces)
}

// Format renders an amount with its currency, e.g. "272.65 EUR".
func Format(d decimal.Decimal, c Currency) string {
	return d.StringFixed(CentsPlaces) + " " + string(c)
}
