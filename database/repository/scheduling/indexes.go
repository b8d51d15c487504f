package schedulingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the hot path depends on. Called once at
// startup; CreateMany is idempotent.
func (repo *MongoSchedulingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	availability := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "worker_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := repo.availabilityColl.Indexes().CreateMany(ctx, availability); err != nil {
		return fmt.Errorf("creating availability indexes: %w", err)
	}

	configs := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenant_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := repo.configColl.Indexes().CreateMany(ctx, configs); err != nil {
		return fmt.Errorf("creating config indexes: %w", err)
	}

	appointments := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := repo.appointmentColl.Indexes().CreateMany(ctx, appointments); err != nil {
		return fmt.Errorf("creating appointment indexes: %w", err)
	}

	workers := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := repo.workerColl.Indexes().CreateMany(ctx, workers); err != nil {
		return fmt.Errorf("creating worker indexes: %w", err)
	}

	schedulings := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "tenant_id", Value: 1},
				{Key: "worker_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "start", Value: 1},
			},
		},
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := repo.schedulingColl.Indexes().CreateMany(ctx, schedulings); err != nil {
		return fmt.Errorf("creating scheduling indexes: %w", err)
	}

	return nil
}
