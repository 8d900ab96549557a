package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Cents is an integer minor-currency-unit amount. All stored and
// transmitted monetary values are Cents; decimal display values exist
// only at input/output boundaries.
type Cents int64

// ToCents converts a decimal display value to cents, rounding half away
// from zero so binary floating-point drift cannot shave a cent
// (19.99 becomes 1999, not 1998).
func ToCents(amount float64) Cents {
	return Cents(math.Round(amount * 100))
}

// FromCents converts cents back to a two-decimal display value.
func FromCents(c Cents) float64 {
	return float64(c) / 100
}

// ParseAmount parses a user-entered decimal string into cents without
// going through binary floating point. Empty or malformed input parses
// to 0; this function never fails.
func ParseAmount(s string) Cents {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return Cents(d.Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// String renders the amount as a plain two-decimal value.
func (c Cents) String() string {
	d := decimal.New(int64(c), -2)
	return d.StringFixed(2)
}

// FormatCurrency renders cents using the currency's conventional symbol
// and decimal conventions. Unknown currency codes fall back to a generic
// "CODE amount" format rather than failing.
func FormatCurrency(c Cents, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			return c.String()
		}
		return fmt.Sprintf("%s %s", code, c.String())
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("%v", currency.Symbol(unit.Amount(FromCents(c))))
}
