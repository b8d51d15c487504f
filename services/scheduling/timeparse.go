package scheduling

import (
	"fmt"
	"time"
)

const (
	dateLayoutISO = "2006-01-02"
	dateLayoutBR  = "02/01/2006"
)

// ParseDate accepts "YYYY-MM-DD" or "DD/MM/YYYY" and returns a calendar date
// truncated to midnight. The boundary normalizes here; everything inside the
// engine works with time.Time dates and minutes of day.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range []string{dateLayoutISO, dateLayoutBR} {
		if d, err := time.Parse(layout, value); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// ParseClock accepts "HH:MM" and returns minutes from midnight.
func ParseClock(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes from midnight as "HH:MM". The end-of-day
// boundary renders as "24:00" so a closing edge inside the tolerance window
// never reads as midnight of the next day.
func FormatClock(minutes int) string {
	if minutes >= MinutesPerDay {
		return "24:00"
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatDateISO renders a date as the at-rest "YYYY-MM-DD" form.
func FormatDateISO(d time.Time) string {
	return d.Format(dateLayoutISO)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// beforeDay reports whether a's calendar date precedes b's. Comparison is by
// date fields, never by instant: parsed dates sit at UTC midnight while the
// clock runs zone-local, and mixing the two misclassifies "today".
func beforeDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
