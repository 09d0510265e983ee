// File: database/repository/schedule/mongo.go
package scheduleRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"beautyboosters/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoScheduleRepo struct {
	slotColl    *mongo.Collection
	boosterColl *mongo.Collection
}

func NewMongoScheduleRepo(db *mongo.Database) *MongoScheduleRepo {
	return &MongoScheduleRepo{
		slotColl:    db.Collection("booster_availability"),
		boosterColl: db.Collection("boosters"),
	}
}

// EnsureIndexes creates the indexes used by the calendar queries.
func (r *MongoScheduleRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slotIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "boosterId", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index().SetName("date_booster_start_idx"),
		},
	}
	if _, err := r.slotColl.Indexes().CreateMany(ctx, slotIndexes); err != nil {
		return fmt.Errorf("failed to create availability indexes: %w", err)
	}

	boosterIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
	}
	if _, err := r.boosterColl.Indexes().CreateMany(ctx, boosterIndexes); err != nil {
		return fmt.Errorf("failed to create booster indexes: %w", err)
	}
	return nil
}

func (r *MongoScheduleRepo) ListActiveBoosters(ctx context.Context) ([]models.Booster, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.boosterColl.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var boosters []models.Booster
	if err := cursor.All(ctx, &boosters); err != nil {
		return nil, err
	}
	return boosters, nil
}

func (r *MongoScheduleRepo) GetBooster(ctx context.Context, boosterID string) (*models.Booster, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booster
	if err := r.boosterColl.FindOne(ctx, bson.M{"id": boosterID}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBoosterNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *MongoScheduleRepo) ListSlotsByDate(ctx context.Context, date string) ([]models.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "boosterId", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := r.slotColl.Find(ctx, bson.M{"date": date}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var slots []models.AvailabilitySlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *MongoScheduleRepo) GetSlot(ctx context.Context, availabilityID string) (*models.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.findOne(ctx, r.slotColl, bson.M{"id": availabilityID})
}

func (r *MongoScheduleRepo) FindSlotAt(ctx context.Context, boosterID, date, timeSlot string) (*models.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "startTime", Value: 1}})
	for _, filter := range slotAtFilters(boosterID, date, timeSlot) {
		slot, err := r.findOne(ctx, r.slotColl, filter, opts)
		if err == ErrSlotNotFound {
			continue
		}
		return slot, err
	}
	return nil, ErrSlotNotFound
}

// slotAtFilters lists the lookups for a cell in order of preference: a free slot in
// the hour, then the earliest slot in the hour.
func slotAtFilters(boosterID, date, timeSlot string) []bson.M {
	if len(timeSlot) < 2 {
		return nil
	}
	inHour := func() bson.M {
		return bson.M{
			"boosterId": boosterID,
			"date":      date,
			"startTime": bson.M{"$regex": "^" + regexp.QuoteMeta(timeSlot[:2]) + ":"},
		}
	}
	free := inHour()
	free["status"] = models.SlotFree
	return []bson.M{free, inHour()}
}

func (r *MongoScheduleRepo) findOne(ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOneOptions) (*models.AvailabilitySlot, error) {
	var slot models.AvailabilitySlot
	if err := coll.FindOne(ctx, filter, opts...).Decode(&slot); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return &slot, nil
}

// MoveAssignment runs the move in a transaction; both updates are guarded on the
// state validated by the caller.
func (r *MongoScheduleRepo) MoveAssignment(ctx context.Context, sourceID, targetID string) (*models.ReassignmentResult, error) {
	client := r.slotColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var result models.ReassignmentResult
	txnFn := func(sc mongo.SessionContext) error {
		var source models.AvailabilitySlot
		err := r.slotColl.FindOne(sc, bson.M{"id": sourceID, "job": bson.M{"$ne": nil}}).Decode(&source)
		if err == mongo.ErrNoDocuments {
			return ErrSlotConflict
		}
		if err != nil {
			return fmt.Errorf("load source slot failed: %w", err)
		}

		now := time.Now().UTC()
		after := options.FindOneAndUpdate().SetReturnDocument(options.After)

		targetUpdate := bson.M{"$set": bson.M{
			"status":    models.SlotBooked,
			"job":       source.Job,
			"notes":     source.Notes,
			"updatedAt": now,
		}}
		var target models.AvailabilitySlot
		err = r.slotColl.FindOneAndUpdate(sc, bson.M{"id": targetID, "status": models.SlotFree}, targetUpdate, after).Decode(&target)
		if err == mongo.ErrNoDocuments {
			return ErrSlotConflict
		}
		if err != nil {
			return fmt.Errorf("book target slot failed: %w", err)
		}

		sourceUpdate := bson.M{
			"$set":   bson.M{"status": models.SlotFree, "updatedAt": now},
			"$unset": bson.M{"job": "", "notes": ""},
		}
		var freed models.AvailabilitySlot
		if err := r.slotColl.FindOneAndUpdate(sc, bson.M{"id": sourceID}, sourceUpdate, after).Decode(&freed); err != nil {
			return fmt.Errorf("free source slot failed: %w", err)
		}

		result = models.ReassignmentResult{Source: freed, Target: target}
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
		if err == ErrSlotConflict {
			return nil, err
		}
		return nil, fmt.Errorf("reassignment transaction failed: %w", err)
	}
	return &result, nil
}
