package glucose

import (
	"fmt"
	"time"

	"github.com/edibulb/glucocoach/internal/apperrors"
	"github.com/edibulb/glucocoach/internal/domain"
)

// Display-unit bounds for a submitted value. Anything outside is
// physiologically impossible and rejected before conversion.
const (
	MinDisplayValue = 2.0
	MaxDisplayValue = 40.0
)

const dateLayout = "2006-01-02"

// ValidateReading checks a raw input payload and normalizes it into a
// Reading in the canonical unit, ready for storage. Pure; returns an
// InvalidPayload error on any defect and never partially succeeds.
func ValidateReading(input domain.ReadingInput) (domain.Reading, error) {
	if input.Date == "" {
		return domain.Reading{}, apperrors.InvalidPayload("date is required")
	}
	if t, err := time.Parse(dateLayout, input.Date); err != nil || t.Format(dateLayout) != input.Date {
		return domain.Reading{}, apperrors.InvalidPayload(fmt.Sprintf("date %q is not YYYY-MM-DD", input.Date))
	}

	slot := domain.TimeSlot(input.TimeSlot)
	if !validSlot(slot) {
		return domain.Reading{}, apperrors.InvalidPayload(fmt.Sprintf("timeSlot %q is not one of Morning, Noon, Evening", input.TimeSlot))
	}

	if input.Value == nil {
		return domain.Reading{}, apperrors.InvalidPayload("value is required")
	}
	v := *input.Value
	if v < MinDisplayValue || v > MaxDisplayValue {
		return domain.Reading{}, apperrors.InvalidPayload(fmt.Sprintf("value %.1f is outside %.0f-%.0f mmol/L", v, MinDisplayValue, MaxDisplayValue))
	}

	state := domain.MealState(input.MealState)
	switch state {
	case "":
		state = domain.MealFasting
	case domain.MealFasting, domain.MealPostMeal:
	default:
		return domain.Reading{}, apperrors.InvalidPayload(fmt.Sprintf("mealState %q is not one of Fasting, Post-meal", input.MealState))
	}

	return domain.Reading{
		Date:      input.Date,
		TimeSlot:  slot,
		Value:     ToCanonical(v),
		MealState: state,
		Note:      input.Note,
	}, nil
}

func validSlot(slot domain.TimeSlot) bool {
	for _, s := range domain.TimeSlots {
		if slot == s {
			return true
		}
	}
	return false
}
