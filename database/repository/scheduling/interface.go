package schedulingRepo

import (
	"context"

	"agendly/models"
)

// SchedulingRepository defines the data access methods used by the scheduling
// engine. Every method is tenant-scoped; nothing here crosses tenants.
type SchedulingRepository interface {
	// GetWeeklyAvailability returns the worker's weekly pattern, or nil when
	// none has been configured.
	GetWeeklyAvailability(ctx context.Context, tenantID, workerID string) (*models.WeeklyAvailability, error)
	// UpsertWeeklyAvailability replaces the worker's weekly pattern.
	UpsertWeeklyAvailability(ctx context.Context, wa *models.WeeklyAvailability) error
	// GetSchedulingConfig returns the tenant policy, or a zero-tolerance
	// default when the tenant has none stored.
	GetSchedulingConfig(ctx context.Context, tenantID string) (*models.SchedulingConfig, error)
	// SetSchedulingConfig replaces the tenant policy.
	SetSchedulingConfig(ctx context.Context, cfg *models.SchedulingConfig) error
	// CreateWorker registers a worker in the tenant.
	CreateWorker(ctx context.Context, w *models.Worker) error
	// GetWorker returns the worker, or nil when unknown.
	GetWorker(ctx context.Context, tenantID, workerID string) (*models.Worker, error)
	// CreateAppointment persists a new appointment type.
	CreateAppointment(ctx context.Context, a *models.Appointment) error
	// GetAppointmentsByIDs resolves appointment types within the tenant.
	// Every requested id must resolve; missing ids are an error.
	GetAppointmentsByIDs(ctx context.Context, tenantID string, ids []string) ([]models.Appointment, error)
	// GetSchedulingsForDay returns the worker's non-cancelled schedulings on
	// the given "YYYY-MM-DD" date, ordered by start.
	GetSchedulingsForDay(ctx context.Context, tenantID, workerID, date string) ([]models.Scheduling, error)
	// CreateScheduling persists the record atomically. All derived fields
	// (Duration, End) are computed by the caller before this call.
	CreateScheduling(ctx context.Context, s *models.Scheduling) error
	// CancelScheduling marks a future scheduling cancelled.
	CancelScheduling(ctx context.Context, tenantID, schedulingID string) error
}
