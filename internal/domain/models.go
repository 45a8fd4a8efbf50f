package domain

import "time"

// TimeSlot is the part of the day a reading was taken in.
type TimeSlot string

const (
	SlotMorning TimeSlot = "Morning"
	SlotNoon    TimeSlot = "Noon"
	SlotEvening TimeSlot = "Evening"
)

// TimeSlots lists every valid slot, in day order.
var TimeSlots = []TimeSlot{SlotMorning, SlotNoon, SlotEvening}

// MealState tells whether a reading was taken fasting or after a meal.
// The clinical thresholds differ between the two.
type MealState string

const (
	MealFasting  MealState = "Fasting"
	MealPostMeal MealState = "Post-meal"
)

// Severity is the clinical band a reading falls into.
type Severity string

const (
	SeverityLow        Severity = "Low"
	SeverityNormal     Severity = "Normal"
	SeverityBorderline Severity = "Borderline"
	SeverityHigh       Severity = "High"
)

// Reading is one blood glucose observation. The value is stored in the
// canonical unit (mg/dL). Readings are immutable once written; the only
// mutation the system supports is an explicit delete.
type Reading struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD, user-local
	TimeSlot  TimeSlot  `json:"timeSlot"`
	Value     int       `json:"value"` // mg/dL
	MealState MealState `json:"mealState"`
	Note      string    `json:"note,omitempty"`
}

// Profile holds a user's coaching preferences and target range.
// Targets are in the canonical unit.
type Profile struct {
	Goals     string `json:"goals"`
	Diet      string `json:"diet"`
	Exercise  string `json:"exercise"`
	TargetMin int    `json:"target_min"`
	TargetMax int    `json:"target_max"`
}

// Default profile targets, mg/dL.
const (
	DefaultTargetMin = 80
	DefaultTargetMax = 140
)

// DefaultProfile returns the profile created on a user's first access.
func DefaultProfile() Profile {
	return Profile{TargetMin: DefaultTargetMin, TargetMax: DefaultTargetMax}
}

// Spike is the largest positive increase between chronologically adjacent
// readings in a window. Derived, never persisted. When no adjacent pair
// increases (including windows of fewer than two readings) Delta is zero
// and both endpoints are nil.
type Spike struct {
	Delta int      `json:"delta"`
	From  *Reading `json:"from"`
	To    *Reading `json:"to"`
}

// Aggregate is the reduction of an ordered reading window.
type Aggregate struct {
	Average int   `json:"avg"`
	Spike   Spike `json:"spike"`
}

// SummaryPayload is the structured fact sheet handed to the text-generation
// collaborator. It carries raw facts only; no severity classification is
// embedded here.
type SummaryPayload struct {
	Average int       `json:"avg"`
	Spike   Spike     `json:"spike"`
	Items   []Reading `json:"items"`
	Profile Profile   `json:"profile"`
}

// CoachRequest asks for a one-off tip about a single reading.
type CoachRequest struct {
	Value     int       `json:"value"` // mg/dL
	TimeSlot  TimeSlot  `json:"timeSlot"`
	MealState MealState `json:"mealState"`
}

// SummaryRecord is a generated coaching message kept for audit, together
// with a snapshot of the facts it was generated from.
type SummaryRecord struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"` // "weekly" or "coach"
	Message   string    `json:"message"`
	Payload   []byte    `json:"payload,omitempty"` // JSON snapshot
	CreatedAt time.Time `json:"created_at"`
}
