package glucose

import "github.com/edibulb/glucocoach/internal/domain"

// band is one row of the threshold table. A value classifies into the first
// band whose upper bound (display unit, exclusive) it is below; past the
// last band the value is High. Exclusive upper bounds make the lower end of
// each band inclusive: fasting 5.5 mmol/L is Normal, 5.6 is Borderline.
// Bounds are compared in canonical units, rounded the same way stored
// readings are, so a reading entered at an exact bound lands in the band
// above it.
type band struct {
	below    float64 // mmol/L
	severity domain.Severity
}

// thresholds is the single source of truth for severity banding. Both the
// report generation and any severity tagging must read from here.
var thresholds = map[domain.MealState][]band{
	domain.MealFasting: {
		{3.9, domain.SeverityLow},
		{5.6, domain.SeverityNormal},
		{7.0, domain.SeverityBorderline},
	},
	domain.MealPostMeal: {
		{3.9, domain.SeverityLow},
		{7.8, domain.SeverityNormal},
		{11.1, domain.SeverityBorderline},
	},
}

// Classify maps a canonical value and meal state to a severity band.
// Total: every value lands in exactly one band, and an unrecognized meal
// state falls back to the fasting thresholds.
func Classify(mgdl int, state domain.MealState) domain.Severity {
	bands, ok := thresholds[state]
	if !ok {
		bands = thresholds[domain.MealFasting]
	}
	for _, b := range bands {
		if mgdl < ToCanonical(b.below) {
			return b.severity
		}
	}
	return domain.SeverityHigh
}
