package decimal

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money is a dollar amount. Arithmetic and comparisons come from the
// embedded decimal; Money adds cents rounding and display formatting.
type Money struct {
	decimal.Decimal
}

var (
	twelve  = decimal.NewFromInt(12)
	maxInt  = decimal.NewFromInt(math.MaxInt64)
	printer = message.NewPrinter(language.AmericanEnglish)
)

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(twelve)}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(twelve)}
}

// String returns the string representation with two decimals
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format formats the amount as US currency with thousands separators, e.g. -$1,234.50
func (m Money) Format() string {
	cents := m.Decimal.Round(2)
	abs := cents.Abs()
	whole := abs.Truncate(0)

	sign := ""
	if cents.IsNegative() {
		sign = "-"
	}
	// ".50" from "0.50"
	frac := abs.Sub(whole).StringFixed(2)[1:]
	return sign + "$" + groupDigits(whole) + frac
}

// groupDigits renders a non-negative integral amount with thousands
// separators. Amounts past int64 are grouped from their digit string.
func groupDigits(whole decimal.Decimal) string {
	if whole.LessThanOrEqual(maxInt) {
		return printer.Sprintf("%d", whole.IntPart())
	}
	digits := whole.String()
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
