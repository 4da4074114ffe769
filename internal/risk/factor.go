package risk

// MaxRiskUplift caps how far one pricing run can move a price: the factor
// never exceeds 1 + MaxRiskUplift no matter what the model outputs.
const MaxRiskUplift = 0.25

// PricingFactor maps per-document risk probabilities to the bounded
// multiplicative factor: the arithmetic mean clamped to [0, MaxRiskUplift],
// plus one. No rounding happens here; prices are rounded only at the point
// of application.
func PricingFactor(probs []float64) (avgRisk, factor float64) {
	if len(probs) == 0 {
		return 0, 1
	}
	var sum float64
	for _, p := range probs {
		sum += p
	}
	avgRisk = sum / float64(len(probs))
	clamped := avgRisk
	if clamped < 0 {
		clamped = 0
	}
	if clamped > MaxRiskUplift {
		clamped = MaxRiskUplift
	}
	return avgRisk, 1 + clamped
}
