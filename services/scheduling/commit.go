package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"agendly/models"
	"agendly/utils"
)

// CreateRequest carries the inputs of the booking commit. Date accepts
// "YYYY-MM-DD" or "DD/MM/YYYY"; StartTime accepts "HH:MM".
type CreateRequest struct {
	TenantID       string
	WorkerID       string
	ClientID       string
	AppointmentIDs []string
	Date           string
	StartTime      string
	Notes          string
}

// CreateScheduling commits a booking. Under the per-worker lock it recomputes
// the slot set, validates the requested start against it, and persists the
// record with duration and end already derived. Read, decision and write all
// happen inside one lock acquisition, so the second of two racing writers
// always sees the first writer's booking.
func (e *Engine) CreateScheduling(ctx context.Context, req CreateRequest) (*models.Scheduling, error) {
	logger := utils.GetLogger()

	if req.TenantID == "" || req.WorkerID == "" || req.ClientID == "" {
		return nil, NewInvalidInput("tenant, worker and client are required")
	}
	if len(req.AppointmentIDs) == 0 {
		return nil, NewInvalidInput("at least one appointment type is required")
	}

	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, NewInvalidInput(err.Error())
	}
	start, err := ParseClock(req.StartTime)
	if err != nil {
		return nil, NewInvalidInput(err.Error())
	}

	var created *models.Scheduling
	lockErr := e.Locker.WithWorkerLock(ctx, req.WorkerID, func(ctx context.Context) error {
		slots, err := e.GenerateSlots(ctx, req.TenantID, req.WorkerID, date, req.AppointmentIDs)
		if err != nil {
			return err
		}

		var matched *models.Slot
		for i := range slots {
			if slots[i].Start == start {
				matched = &slots[i]
				break
			}
		}
		if matched == nil {
			return NewSlotUnavailable("the requested start time is no longer available")
		}

		s := &models.Scheduling{
			ID:             uuid.New().String(),
			TenantID:       req.TenantID,
			WorkerID:       req.WorkerID,
			ClientID:       req.ClientID,
			AppointmentIDs: req.AppointmentIDs,
			Date:           FormatDateISO(date),
			Start:          matched.Start,
			End:            matched.End,
			Duration:       matched.End - matched.Start,
			Notes:          req.Notes,
			CreatedAt:      e.now(),
		}
		if err := e.Repo.CreateScheduling(ctx, s); err != nil {
			return err
		}
		created = s
		return nil
	})
	if lockErr != nil {
		if errors.Is(lockErr, utils.ErrLockNotAcquired) {
			return nil, NewLockUnavailable("another booking for this worker is in progress")
		}
		return nil, lockErr
	}

	logger.Info("scheduling committed",
		zap.String("schedulingID", created.ID),
		zap.String("workerID", created.WorkerID),
		zap.String("date", created.Date),
		zap.Int("start", created.Start),
		zap.Int("duration", created.Duration),
	)

	if e.Reminders != nil {
		if err := e.Reminders.ScheduleReminder(ctx, created); err != nil {
			logger.Warn("failed to schedule reminder",
				zap.String("schedulingID", created.ID), zap.Error(err))
		}
	}
	return created, nil
}

// CancelScheduling marks a future scheduling cancelled, freeing its interval
// for new bookings.
func (e *Engine) CancelScheduling(ctx context.Context, tenantID, schedulingID string) error {
	return e.Repo.CancelScheduling(ctx, tenantID, schedulingID)
}

// ListSchedulings returns a worker's non-cancelled schedulings for one date.
func (e *Engine) ListSchedulings(ctx context.Context, tenantID, workerID, date string) ([]models.Scheduling, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, NewInvalidInput(err.Error())
	}
	return e.Repo.GetSchedulingsForDay(ctx, tenantID, workerID, FormatDateISO(day))
}

// SetWeeklyAvailability validates and stores a worker's weekly pattern.
func (e *Engine) SetWeeklyAvailability(ctx context.Context, tenantID, workerID string, days [7][]models.TimeRange) error {
	if err := ValidateWeeklyPattern(days); err != nil {
		return err
	}
	now := time.Now()
	return e.Repo.UpsertWeeklyAvailability(ctx, &models.WeeklyAvailability{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		WorkerID:  workerID,
		Days:      days,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// SetOverlapTolerance stores the tenant's overlap tolerance policy.
func (e *Engine) SetOverlapTolerance(ctx context.Context, tenantID string, minutes int) error {
	if minutes < 0 {
		return NewInvalidInput("overlap tolerance must not be negative")
	}
	return e.Repo.SetSchedulingConfig(ctx, &models.SchedulingConfig{
		TenantID:         tenantID,
		OverlapTolerance: minutes,
		UpdatedAt:        time.Now(),
	})
}
