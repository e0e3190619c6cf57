package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestISTDateAt(t *testing.T) {
	// 12:00 UTC is 17:30 IST the same day.
	at := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	d := ISTDateAt(at)

	assert.Equal(t, "2025-09-01", d.Date)
	assert.Equal(t, 244, d.DayOfYear)
	assert.Equal(t, 35, d.WeekNumber)
	assert.Equal(t, 20332, d.DaysSinceEpoch)
}

func TestISTDateAtCrossesMidnightBeforeUTC(t *testing.T) {
	// 19:00 UTC on Aug 31 is already 00:30 IST on Sep 1.
	at := time.Date(2025, 8, 31, 19, 0, 0, 0, time.UTC)
	d := ISTDateAt(at)

	assert.Equal(t, "2025-09-01", d.Date)
	assert.Equal(t, 244, d.DayOfYear)
}

func TestISTDateAtStartOfYear(t *testing.T) {
	at := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	d := ISTDateAt(at)

	assert.Equal(t, "2025-01-01", d.Date)
	assert.Equal(t, 1, d.DayOfYear)
	// Jan 1 2025 is a Wednesday: (0 days + weekday 3) / 7.
	assert.Equal(t, 0, d.WeekNumber)
}

func TestISTDateAtWeekNumberAdvances(t *testing.T) {
	sunday := time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC)    // Saturday IST
	nextWeek := time.Date(2025, 1, 11, 12, 0, 0, 0, time.UTC) // one week later

	assert.Equal(t, ISTDateAt(sunday).WeekNumber+1, ISTDateAt(nextWeek).WeekNumber)
}

func TestDateString(t *testing.T) {
	at := time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-29", DateString(at))
}

func TestISTLocationOffset(t *testing.T) {
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	_, offset := at.In(ISTLocation).Zone()
	assert.Equal(t, 5*3600+30*60, offset)
}
