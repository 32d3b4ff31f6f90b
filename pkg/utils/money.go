package utils

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// FinalPrice applies a percentage discount and rounds to 2 places.
func FinalPrice(price, discount decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(discount.Div(hundred))
	return price.Mul(factor).Round(2)
}

// OriginalPrice recovers the "before discount" display price from price and discount.
// A zero or full discount has no inverse, so price is returned unchanged.
func OriginalPrice(price, discount decimal.Decimal) decimal.Decimal {
	if discount.Sign() <= 0 || discount.GreaterThanOrEqual(hundred) {
		return price.Round(2)
	}
	factor := decimal.NewFromInt(1).Sub(discount.Div(hundred))
	return price.Div(factor).Round(2)
}

func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
