package limits

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation failures carry the user-facing message for the limit form.
var (
	ErrNotANumber   = errors.New("enter a valid amount")
	ErrBelowMinimum = errors.New("amount is below the minimum allowed limit")
	ErrAboveMaximum = errors.New("amount is above the maximum allowed limit")
)

// Bounds are the constraints a proposed limit is checked against.
type Bounds struct {
	UsedAmount      int64
	MinAllowedLimit int64
	MaxAllowedLimit int64
}

// Floor is the lowest limit that may be set: never below the product
// minimum, never below what has already been spent.
func (b Bounds) Floor() int64 {
	if b.UsedAmount > b.MinAllowedLimit {
		return b.UsedAmount
	}
	return b.MinAllowedLimit
}

// Validate checks a proposed limit in minor units against the bounds.
func Validate(amount int64, b Bounds) error {
	if amount < b.Floor() {
		return ErrBelowMinimum
	}
	if amount > b.MaxAllowedLimit {
		return ErrAboveMaximum
	}
	return nil
}

var hundred = decimal.NewFromInt(100)

// ParseAmount converts a decimal string in major units ("2500.00") to
// minor units. Sub-cent precision is rejected the same way as garbage
// input: the form only deals in whole cents.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrNotANumber
	}
	cents := d.Mul(hundred)
	if !cents.IsInteger() {
		return 0, ErrNotANumber
	}
	return cents.IntPart(), nil
}

// FormatAmount renders minor units as a major-unit string with two
// decimal places, for notification text and emails.
func FormatAmount(cents int64) string {
	return decimal.NewFromInt(cents).Div(hundred).StringFixed(2)
}
