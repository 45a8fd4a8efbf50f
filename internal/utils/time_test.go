package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.Local)

	from, to := DateWindow(now, WeekDays)
	assert.Equal(t, "2026-08-23", from)
	assert.Equal(t, "2026-08-30", to)

	from, _ = DateWindow(now, MonthDays)
	assert.Equal(t, "2026-07-31", from)
}

func TestDateWindowCrossesMonthBoundary(t *testing.T) {
	now := time.Date(2026, 3, 3, 0, 0, 0, 0, time.Local)
	from, to := DateWindow(now, WeekDays)
	assert.Equal(t, "2026-02-24", from)
	assert.Equal(t, "2026-03-03", to)
}

func TestRangeDays(t *testing.T) {
	assert.Equal(t, 7, RangeDays("week"))
	assert.Equal(t, 30, RangeDays("month"))
	assert.Equal(t, 30, RangeDays("anything-else"))
}
