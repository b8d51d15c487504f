package schedulingRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"agendly/models"
)

// CreateScheduling persists a scheduling inside a Mongo session transaction.
// The caller computed Duration and End from the appointment set before this
// call; everything is written in one insert, so no reader ever observes a
// partially derived record.
func (repo *MongoSchedulingRepo) CreateScheduling(ctx context.Context, s *models.Scheduling) error {
	client := repo.schedulingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := repo.schedulingColl.InsertOne(sc, s); err != nil {
			return fmt.Errorf("insert scheduling failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("scheduling transaction failed: %w", err)
	}

	return nil
}
