package pricing

import (
	"math"

	"codgate/internal/model"
)

// round2 rounds a monetary value to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Calculate computes the bundle discount breakdown for a line.
//
// A positive percent discount is applied first; a positive fixed discount
// overrides it, capped at the original total so the result never goes below
// zero, with the effective percent back-computed from the capped savings.
// Zero quantity or price yields an all-zero result; this function never
// fails.
func Calculate(basePrice float64, quantity int, discountPercent, discountFixed float64) model.PriceCalculation {
	original := basePrice * float64(quantity)
	if original <= 0 {
		return model.PriceCalculation{}
	}

	var savings, pct float64

	if discountPercent > 0 {
		pct = discountPercent
		savings = original * discountPercent / 100
	}

	if discountFixed > 0 {
		savings = math.Min(discountFixed, original)
		pct = savings / original * 100
	}

	return model.PriceCalculation{
		Original:        round2(original),
		Discounted:      round2(original - savings),
		Savings:         round2(savings),
		DiscountPercent: round2(pct),
	}
}
