package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var uzs = accounting.Accounting{Symbol: "UZS ", Precision: 2, Thousand: " ", Decimal: "."}

// FormatUZS renders an amount for display, e.g. "UZS 1 250 000.00".
func FormatUZS(amount decimal.Decimal) string {
	return uzs.FormatMoneyDecimal(amount)
}
