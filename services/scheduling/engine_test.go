package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	"agendly/models"
)

// fakeRepo is an in-memory SchedulingRepository for engine tests.
type fakeRepo struct {
	mu           sync.Mutex
	availability map[string]*models.WeeklyAvailability // workerID -> pattern
	configs      map[string]*models.SchedulingConfig   // tenantID -> config
	appointments map[string]models.Appointment         // appointmentID -> type
	workers      map[string]models.Worker              // workerID -> worker
	schedulings  []models.Scheduling

	failCreate error // injected persistence fault
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		availability: make(map[string]*models.WeeklyAvailability),
		configs:      make(map[string]*models.SchedulingConfig),
		appointments: make(map[string]models.Appointment),
		workers:      make(map[string]models.Worker),
	}
}

func (r *fakeRepo) GetWeeklyAvailability(_ context.Context, _, workerID string) (*models.WeeklyAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.availability[workerID], nil
}

func (r *fakeRepo) UpsertWeeklyAvailability(_ context.Context, wa *models.WeeklyAvailability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.availability[wa.WorkerID] = wa
	return nil
}

func (r *fakeRepo) GetSchedulingConfig(_ context.Context, tenantID string) (*models.SchedulingConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cfg, ok := r.configs[tenantID]; ok {
		return cfg, nil
	}
	return &models.SchedulingConfig{TenantID: tenantID}, nil
}

func (r *fakeRepo) SetSchedulingConfig(_ context.Context, cfg *models.SchedulingConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[cfg.TenantID] = cfg
	return nil
}

func (r *fakeRepo) CreateWorker(_ context.Context, w *models.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workers[w.ID] = *w
	return nil
}

func (r *fakeRepo) GetWorker(_ context.Context, tenantID, workerID string) (*models.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.workers[workerID]; ok && w.TenantID == tenantID {
		return &w, nil
	}
	return nil, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[a.ID] = *a
	return nil
}

func (r *fakeRepo) GetAppointmentsByIDs(_ context.Context, tenantID string, ids []string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, id := range ids {
		if a, ok := r.appointments[id]; ok && a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetSchedulingsForDay(_ context.Context, tenantID, workerID, date string) ([]models.Scheduling, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Scheduling
	for _, s := range r.schedulings {
		if s.TenantID == tenantID && s.WorkerID == workerID && s.Date == date && !s.Cancelled {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateScheduling(_ context.Context, s *models.Scheduling) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	r.schedulings = append(r.schedulings, *s)
	return nil
}

func (r *fakeRepo) CancelScheduling(_ context.Context, tenantID, schedulingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.schedulings {
		if r.schedulings[i].TenantID == tenantID && r.schedulings[i].ID == schedulingID {
			r.schedulings[i].Cancelled = true
			return nil
		}
	}
	return fmt.Errorf("scheduling %s not found", schedulingID)
}

// memoryLocker serializes per worker inside one process, mirroring the
// contract of the redis lock for tests.
type memoryLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newMemoryLocker() *memoryLocker {
	return &memoryLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *memoryLocker) WithWorkerLock(ctx context.Context, workerID string, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	m, ok := l.locks[workerID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[workerID] = m
	}
	l.mu.Unlock()

	m.Lock()
	defer m.Unlock()
	return fn(ctx)
}

// failingLocker simulates an acquire timeout.
type failingLocker struct{ err error }

func (l *failingLocker) WithWorkerLock(context.Context, string, func(ctx context.Context) error) error {
	return l.err
}

const (
	testTenant = "tenant-1"
	testWorker = "worker-1"
	testClient = "client-1"
)

// newTestEngine builds an engine over fresh fakes with a fixed clock.
func newTestEngine(now time.Time) (*Engine, *fakeRepo) {
	repo := newFakeRepo()
	engine := &Engine{
		Repo:   repo,
		Locker: newMemoryLocker(),
		Now:    func() time.Time { return now },
	}
	return engine, repo
}

func (r *fakeRepo) addAppointment(id string, duration int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[id] = models.Appointment{
		ID:       id,
		TenantID: testTenant,
		Name:     id,
		Duration: duration,
		IsActive: true,
	}
}

// setDay installs availability ranges for one weekday (Monday=0 .. Sunday=6).
func (r *fakeRepo) setDay(workerID string, day int, ranges ...models.TimeRange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wa := r.availability[workerID]
	if wa == nil {
		wa = &models.WeeklyAvailability{
			ID:       "wa-" + workerID,
			TenantID: testTenant,
			WorkerID: workerID,
		}
		r.availability[workerID] = wa
	}
	wa.Days[day] = ranges
}
