package client

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// NaN is what a debt becomes when a payment is recorded against a value
// that is not a number and strict amounts are off.
const NaN = "NaN"

// ApplyPayment subtracts amount from debt.
// A result at or below zero clears the debt and marks the client Paid; otherwise
// the remainder is returned unrounded and the status is left as it was.
// Negative amounts are not rejected and increase the debt.
func ApplyPayment(status Status, debt, amount decimal.Decimal) (decimal.Decimal, Status) {
	newDebt := debt.Sub(amount)
	if !newDebt.IsPositive() {
		return decimal.Zero, StatusPaid
	}
	return newDebt, status
}

// FormatDebt renders a cleared debt as "0" and anything else rounded to cents,
// so a sub-cent remainder still reads "0.00".
func FormatDebt(d decimal.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	return d.StringFixed(2)
}

// ParseAmount parses a user-entered amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseLeadingAmount parses the longest numeric prefix of s, ignoring leading
// whitespace, so "40 C$" reads as 40. Input without such a prefix is invalid.
func ParseLeadingAmount(s string) (decimal.Decimal, error) {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	return ParseAmount(m)
}

// IsNumeric reports whether s parses as an amount.
func IsNumeric(s string) bool {
	_, err := ParseAmount(s)
	return err == nil
}
