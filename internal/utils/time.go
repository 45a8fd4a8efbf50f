package utils

import "time"

// DateLayout is the local calendar day format used throughout the system.
const DateLayout = "2006-01-02"

// Window day spans for the two query ranges.
const (
	WeekDays  = 7
	MonthDays = 30
)

// TodayLocal returns today's date in the process-local timezone.
func TodayLocal() string {
	return time.Now().Format(DateLayout)
}

// DateWindow returns the inclusive [from, to] date strings for a window of
// the given number of days ending today.
func DateWindow(now time.Time, days int) (from, to string) {
	return now.AddDate(0, 0, -days).Format(DateLayout), now.Format(DateLayout)
}

// RangeDays maps a range name to its day span; anything that is not "week"
// falls back to the month window, matching the query API's behavior.
func RangeDays(rangeName string) int {
	if rangeName == "week" {
		return WeekDays
	}
	return MonthDays
}
