package output

import (
	dec "github.com/rpgo/college-planner/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as USD with thousands separators and 2 decimals.
func FormatCurrency(amount decimal.Decimal) string { return dec.NewMoneyFromDecimal(amount).Format() }

// FormatPercentage formats a decimal that is already a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.05) as a percentage (5.00%).
func FormatRate(rate decimal.Decimal) string { return FormatPercentage(rate.Mul(decimalHundred)) }

var decimalHundred = decimal.NewFromInt(100)
