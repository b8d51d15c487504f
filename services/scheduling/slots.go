package scheduling

import (
	"context"
	"fmt"
	"time"

	"agendly/models"
)

// totalDuration resolves the appointment set and sums its durations. Every id
// must resolve within the tenant.
func (e *Engine) totalDuration(ctx context.Context, tenantID string, appointmentIDs []string) (int, error) {
	if len(appointmentIDs) == 0 {
		return 0, nil
	}
	appointments, err := e.Repo.GetAppointmentsByIDs(ctx, tenantID, appointmentIDs)
	if err != nil {
		return 0, err
	}
	if len(appointments) != len(appointmentIDs) {
		return 0, NewInvalidInput("one or more appointment types do not exist")
	}
	total := 0
	for _, a := range appointments {
		total += a.Duration
	}
	return total, nil
}

// GenerateSlots enumerates the bookable slots for a worker on a date, given
// the selected appointment set. The first slot in each window starts at the
// earliest admissible minute; the following slots snap to the next whole
// hours so the options stay predictable for end users.
func (e *Engine) GenerateSlots(ctx context.Context, tenantID, workerID string, date time.Time, appointmentIDs []string) ([]models.Slot, error) {
	total, err := e.totalDuration(ctx, tenantID, appointmentIDs)
	if err != nil {
		return nil, err
	}
	if total <= 0 {
		return nil, nil
	}

	raw, err := e.resolveAvailability(ctx, tenantID, workerID, date)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	now := e.now()
	busy, err := e.busyIntervals(ctx, tenantID, workerID, date, now)
	if err != nil {
		return nil, err
	}

	free := Subtract(raw, busy)
	if len(free) == 0 {
		return nil, nil
	}

	cfg, err := e.Repo.GetSchedulingConfig(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("fetching scheduling config for tenant %s: %w", tenantID, err)
	}
	tolerance := 0
	if cfg != nil && cfg.OverlapTolerance > 0 {
		tolerance = cfg.OverlapTolerance
	}

	today := sameDate(date, now)
	earliest := 0
	if today {
		earliest = minutesOfDay(now) + e.leadInMinutes()
	}

	var slots []models.Slot
	for _, w := range free {
		// Tolerance extends only the closing edge; a booking may run past the
		// nominal window end but never start before the window opens. Capped
		// at end of day so a scheduling never crosses its date.
		end := w.End + tolerance
		if end > MinutesPerDay {
			end = MinutesPerDay
		}

		start := w.Start
		if today && earliest > start {
			start = earliest
		}
		if start+total > end {
			continue
		}
		slots = append(slots, models.Slot{Start: start, End: start + total})

		for anchor := nextHourAfter(start); anchor+total <= end; anchor += 60 {
			slots = append(slots, models.Slot{Start: anchor, End: anchor + total})
		}
	}
	return slots, nil
}

// GetAvailableSlots is the read-only operation: it parses the wire date and
// returns the 1-based ordered slot mapping in wall-clock form. It bypasses
// the worker lock; the authoritative check re-runs inside CreateScheduling.
func (e *Engine) GetAvailableSlots(ctx context.Context, tenantID, workerID, date string, appointmentIDs []string) (map[string]models.SlotView, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, NewInvalidInput(err.Error())
	}

	slots, err := e.GenerateSlots(ctx, tenantID, workerID, day, appointmentIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[string]models.SlotView, len(slots))
	for i, s := range slots {
		out[fmt.Sprintf("%d", i+1)] = models.SlotView{
			HorarioInicio: FormatClock(s.Start),
			HorarioFim:    FormatClock(s.End),
		}
	}
	return out, nil
}
