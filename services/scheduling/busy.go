package scheduling

import (
	"context"
	"fmt"
	"time"
)

// busyIntervals projects the worker's non-cancelled schedulings on date into
// busy minute intervals. Schedulings that already ended relative to now do
// not block new bookings in the same still-open window: today that means
// end <= now, and a fully past date contributes nothing at all.
func (e *Engine) busyIntervals(ctx context.Context, tenantID, workerID string, date, now time.Time) ([]Interval, error) {
	if beforeDay(date, now) {
		return nil, nil
	}

	schedulings, err := e.Repo.GetSchedulingsForDay(ctx, tenantID, workerID, FormatDateISO(date))
	if err != nil {
		return nil, fmt.Errorf("fetching schedulings for worker %s on %s: %w", workerID, FormatDateISO(date), err)
	}

	nowMin := minutesOfDay(now)
	today := sameDate(date, now)

	var busy []Interval
	for _, s := range schedulings {
		if today && s.End <= nowMin {
			continue
		}
		busy = append(busy, Interval{Start: s.Start, End: s.End})
	}
	sortIntervals(busy)
	return busy, nil
}
