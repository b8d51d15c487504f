package scheduling

import (
	"context"
	"time"

	schedulingRepo "agendly/database/repository/scheduling"
	"agendly/models"
)

// DefaultLeadIn is how far ahead of "now" the first same-day slot may start.
const DefaultLeadIn = 10 * time.Minute

// WorkerLocker serializes writers for a single worker. Implementations must
// be process- and node-safe; fn runs only while the lock is held and the lock
// is released on every exit path.
type WorkerLocker interface {
	WithWorkerLock(ctx context.Context, workerID string, fn func(ctx context.Context) error) error
}

// ReminderScheduler enqueues a reminder for a committed scheduling. Failures
// are logged, never surfaced: a booking without a reminder is still a booking.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, s *models.Scheduling) error
}

// Engine computes available time slots and commits bookings.
type Engine struct {
	Repo      schedulingRepo.SchedulingRepository
	Locker    WorkerLocker
	Reminders ReminderScheduler // optional

	// Now is injectable for tests; zero value falls back to time.Now.
	Now func() time.Time
	// LeadIn overrides DefaultLeadIn when positive.
	LeadIn time.Duration
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) leadInMinutes() int {
	lead := e.LeadIn
	if lead <= 0 {
		lead = DefaultLeadIn
	}
	return int(lead / time.Minute)
}
