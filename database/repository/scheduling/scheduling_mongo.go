package schedulingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agendly/config"
	"agendly/database"
	"agendly/models"
)

// MongoSchedulingRepo implements SchedulingRepository using MongoDB, with a
// Redis read-through cache on the hot-path documents (weekly availability and
// tenant config). Writes invalidate.
type MongoSchedulingRepo struct {
	availabilityColl *mongo.Collection
	configColl       *mongo.Collection
	appointmentColl  *mongo.Collection
	schedulingColl   *mongo.Collection
	workerColl       *mongo.Collection

	cache *RepoCache
}

// NewMongoSchedulingRepo constructs the production repository.
func NewMongoSchedulingRepo(cache *RepoCache) SchedulingRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoSchedulingRepo{
		availabilityColl: db.Collection("weekly_availability"),
		configColl:       db.Collection("scheduling_config"),
		appointmentColl:  db.Collection("appointments"),
		schedulingColl:   db.Collection("schedulings"),
		workerColl:       db.Collection("workers"),
		cache:            cache,
	}
}

func opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 5*time.Second)
}

// GetWeeklyAvailability returns the worker's weekly pattern, or nil when none
// is configured.
func (repo *MongoSchedulingRepo) GetWeeklyAvailability(ctx context.Context, tenantID, workerID string) (*models.WeeklyAvailability, error) {
	if wa, ok := repo.cache.getAvailability(ctx, tenantID, workerID); ok {
		return wa, nil
	}

	ctx, cancel := opCtx(ctx)
	defer cancel()

	var wa models.WeeklyAvailability
	filter := bson.M{"tenant_id": tenantID, "worker_id": workerID}
	if err := repo.availabilityColl.FindOne(ctx, filter).Decode(&wa); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching availability for worker %s: %w", workerID, err)
	}

	repo.cache.setAvailability(ctx, &wa)
	return &wa, nil
}

// UpsertWeeklyAvailability replaces the worker's pattern and drops the cached copy.
func (repo *MongoSchedulingRepo) UpsertWeeklyAvailability(ctx context.Context, wa *models.WeeklyAvailability) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	filter := bson.M{"tenant_id": wa.TenantID, "worker_id": wa.WorkerID}
	update := bson.M{
		"$set": bson.M{
			"days":       wa.Days,
			"updated_at": wa.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"id":         wa.ID,
			"tenant_id":  wa.TenantID,
			"worker_id":  wa.WorkerID,
			"created_at": wa.CreatedAt,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.availabilityColl.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error upserting availability for worker %s: %w", wa.WorkerID, err)
	}

	repo.cache.invalidateAvailability(ctx, wa.TenantID, wa.WorkerID)
	return nil
}

// GetSchedulingConfig returns the tenant policy; tenants without a stored
// policy get the zero-tolerance default.
func (repo *MongoSchedulingRepo) GetSchedulingConfig(ctx context.Context, tenantID string) (*models.SchedulingConfig, error) {
	if cfg, ok := repo.cache.getConfig(ctx, tenantID); ok {
		return cfg, nil
	}

	ctx, cancel := opCtx(ctx)
	defer cancel()

	var cfg models.SchedulingConfig
	if err := repo.configColl.FindOne(ctx, bson.M{"tenant_id": tenantID}).Decode(&cfg); err != nil {
		if err == mongo.ErrNoDocuments {
			return &models.SchedulingConfig{TenantID: tenantID, OverlapTolerance: 0}, nil
		}
		return nil, fmt.Errorf("error fetching scheduling config for tenant %s: %w", tenantID, err)
	}

	repo.cache.setConfig(ctx, &cfg)
	return &cfg, nil
}

// SetSchedulingConfig replaces the tenant policy and drops the cached copy.
func (repo *MongoSchedulingRepo) SetSchedulingConfig(ctx context.Context, cfg *models.SchedulingConfig) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	filter := bson.M{"tenant_id": cfg.TenantID}
	update := bson.M{"$set": bson.M{
		"tenant_id":         cfg.TenantID,
		"overlap_tolerance": cfg.OverlapTolerance,
		"updated_at":        cfg.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.configColl.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error upserting scheduling config for tenant %s: %w", cfg.TenantID, err)
	}

	repo.cache.invalidateConfig(ctx, cfg.TenantID)
	return nil
}

// CreateWorker registers a worker in the tenant.
func (repo *MongoSchedulingRepo) CreateWorker(ctx context.Context, w *models.Worker) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	if _, err := repo.workerColl.InsertOne(ctx, w); err != nil {
		return fmt.Errorf("error creating worker: %w", err)
	}
	return nil
}

// GetWorker returns the worker, or nil when unknown.
func (repo *MongoSchedulingRepo) GetWorker(ctx context.Context, tenantID, workerID string) (*models.Worker, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var w models.Worker
	filter := bson.M{"tenant_id": tenantID, "id": workerID}
	if err := repo.workerColl.FindOne(ctx, filter).Decode(&w); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching worker %s: %w", workerID, err)
	}
	return &w, nil
}

// CreateAppointment persists a new appointment type.
func (repo *MongoSchedulingRepo) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	if _, err := repo.appointmentColl.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("error creating appointment: %w", err)
	}
	return nil
}

// GetAppointmentsByIDs resolves active appointment types within the tenant.
func (repo *MongoSchedulingRepo) GetAppointmentsByIDs(ctx context.Context, tenantID string, ids []string) ([]models.Appointment, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	filter := bson.M{
		"tenant_id": tenantID,
		"id":        bson.M{"$in": ids},
		"is_active": true,
	}
	cursor, err := repo.appointmentColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appointments, nil
}

// GetSchedulingsForDay returns the worker's non-cancelled schedulings on a
// date, ordered by start time.
func (repo *MongoSchedulingRepo) GetSchedulingsForDay(ctx context.Context, tenantID, workerID, date string) ([]models.Scheduling, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	filter := bson.M{
		"tenant_id": tenantID,
		"worker_id": workerID,
		"date":      date,
		"cancelled": bson.M{"$ne": true},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := repo.schedulingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching schedulings: %w", err)
	}
	defer cursor.Close(ctx)

	var schedulings []models.Scheduling
	if err := cursor.All(ctx, &schedulings); err != nil {
		return nil, fmt.Errorf("error decoding schedulings: %w", err)
	}
	return schedulings, nil
}

// CancelScheduling marks a future scheduling cancelled. Schedulings that have
// already started stay on the books.
func (repo *MongoSchedulingRepo) CancelScheduling(ctx context.Context, tenantID, schedulingID string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var s models.Scheduling
	filter := bson.M{"tenant_id": tenantID, "id": schedulingID}
	if err := repo.schedulingColl.FindOne(ctx, filter).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("scheduling %s not found", schedulingID)
		}
		return fmt.Errorf("error fetching scheduling %s: %w", schedulingID, err)
	}

	day, err := time.ParseInLocation("2006-01-02", s.Date, time.Local)
	if err != nil {
		return fmt.Errorf("invalid scheduling date %q: %w", s.Date, err)
	}
	startAt := day.Add(time.Duration(s.Start) * time.Minute)
	if time.Now().After(startAt) {
		return fmt.Errorf("cannot cancel scheduling %s: it has already started", schedulingID)
	}

	update := bson.M{"$set": bson.M{"cancelled": true}}
	if _, err := repo.schedulingColl.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error cancelling scheduling %s: %w", schedulingID, err)
	}
	return nil
}
