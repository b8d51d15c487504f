package scheduling

import (
	"context"
	"fmt"
	"time"

	"agendly/models"
)

// resolveAvailability produces the worker's raw availability windows for one
// date, in minutes from midnight. No configured availability means an empty
// day, not an error. Entries that fail to parse or violate start < end are
// dropped; a pattern written through the validated management surface never
// contains them.
func (e *Engine) resolveAvailability(ctx context.Context, tenantID, workerID string, date time.Time) ([]Interval, error) {
	wa, err := e.Repo.GetWeeklyAvailability(ctx, tenantID, workerID)
	if err != nil {
		return nil, fmt.Errorf("fetching weekly availability for worker %s: %w", workerID, err)
	}
	if wa == nil {
		return nil, nil
	}

	day := wa.Days[models.WeekdayIndex(date.Weekday())]

	var windows []Interval
	for _, tr := range day {
		start, err := ParseClock(tr.Start)
		if err != nil {
			continue
		}
		end, err := ParseClock(tr.End)
		if err != nil {
			continue
		}
		if start >= end {
			continue
		}
		windows = append(windows, Interval{Start: start, End: end})
	}
	sortIntervals(windows)
	return windows, nil
}

// ValidateWeeklyPattern checks a pattern before it is written: per day at most
// two ranges, each "HH:MM" with start < end, ordered and non-overlapping.
func ValidateWeeklyPattern(days [7][]models.TimeRange) error {
	for d, ranges := range days {
		if len(ranges) > 2 {
			return NewInvalidInput(fmt.Sprintf("day %d has %d ranges, at most 2 allowed", d, len(ranges)))
		}
		prevEnd := -1
		for _, tr := range ranges {
			start, err := ParseClock(tr.Start)
			if err != nil {
				return NewInvalidInput(fmt.Sprintf("day %d: %v", d, err))
			}
			end, err := ParseClock(tr.End)
			if err != nil {
				return NewInvalidInput(fmt.Sprintf("day %d: %v", d, err))
			}
			if start >= end {
				return NewInvalidInput(fmt.Sprintf("day %d: range %s-%s is empty", d, tr.Start, tr.End))
			}
			if start <= prevEnd {
				return NewInvalidInput(fmt.Sprintf("day %d: ranges overlap or are out of order", d))
			}
			prevEnd = end
		}
	}
	return nil
}
