package calc

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// EffectiveUnitPrice applies the product discount to its base price and
// rounds to the currency's minor unit (2 decimal places).
func EffectiveUnitPrice(basePrice decimal.Decimal, discountPercentage int) decimal.Decimal {
	if discountPercentage <= 0 {
		return basePrice.Round(2)
	}
	discount := basePrice.Mul(decimal.NewFromInt(int64(discountPercentage))).Div(oneHundred)
	return basePrice.Sub(discount).Round(2)
}

func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// AggregateTotal sums line subtotals and rounds once at the end, so the
// grand total never drifts from per-line rounding.
func AggregateTotal(subtotals []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, s := range subtotals {
		total = total.Add(s)
	}
	return total.Round(2)
}
