package utils

import (
	"time"
)

// ISTLocation is the canonical timezone for all daily rotation boundaries
// (UTC+5:30). Rotations flip at midnight IST regardless of requester timezone.
var ISTLocation = time.FixedZone("IST", 5*3600+30*60)

const istOffsetSeconds = 5*3600 + 30*60

// TimeNowIST returns the current time in IST.
func TimeNowIST() time.Time {
	return time.Now().In(ISTLocation)
}

// ISTDate captures the calendar coordinates derived from a single instant,
// used by the daily and weekly rotation logic.
type ISTDate struct {
	Now            time.Time
	Date           string // YYYY-MM-DD
	WeekNumber     int
	DaysSinceEpoch int
	DayOfYear      int
}

// ISTDateAt computes the IST calendar coordinates for the given instant.
func ISTDateAt(t time.Time) ISTDate {
	ist := t.In(ISTLocation)

	startOfYear := time.Date(ist.Year(), time.January, 1, 0, 0, 0, 0, ISTLocation)
	days := int(ist.Sub(startOfYear).Hours() / 24)
	weekNumber := (days + int(startOfYear.Weekday())) / 7

	return ISTDate{
		Now:            ist,
		Date:           ist.Format("2006-01-02"),
		WeekNumber:     weekNumber,
		DaysSinceEpoch: int((ist.Unix() + istOffsetSeconds) / 86400),
		DayOfYear:      ist.YearDay(),
	}
}

// DateString formats a time as the catalog's date format (YYYY-MM-DD).
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}
