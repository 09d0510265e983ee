// File: database/repository/chat/mongo.go
package chatRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"beautyboosters/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrJobNotFound = errors.New("job not found")

// MongoChatRepo reads job messages and the jobs they belong to.
type MongoChatRepo struct {
	messages *mongo.Collection
	jobs     *mongo.Collection
}

func NewMongoChatRepo(db *mongo.Database) *MongoChatRepo {
	return &MongoChatRepo{
		messages: db.Collection("job_communications"),
		jobs:     db.Collection("jobs"),
	}
}

// EnsureIndexes creates the indexes on the messages and jobs collections.
func (r *MongoChatRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "jobId", Value: 1}, {Key: "createdAt", Value: 1}},
		Options: options.Index().SetName("job_created_idx"),
	})
	if err != nil {
		return fmt.Errorf("failed to create job_communications indexes: %w", err)
	}
	_, err = r.jobs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create jobs indexes: %w", err)
	}
	return nil
}

func (r *MongoChatRepo) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var job models.Job
	if err := r.jobs.FindOne(ctx, bson.M{"id": jobID}).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

type insertEvent struct {
	FullDocument models.JobMessage `bson:"fullDocument"`
}

// Listen watches job_communications for inserts and hands each new message to handle
// until ctx is cancelled.
func (r *MongoChatRepo) Listen(ctx context.Context, handle func(models.JobMessage)) error {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "operationType", Value: "insert"}}}},
	}
	stream, err := r.messages.Watch(ctx, pipeline, options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		return fmt.Errorf("open job_communications change stream: %w", err)
	}
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		var ev insertEvent
		if err := stream.Decode(&ev); err != nil {
			return fmt.Errorf("decode change event: %w", err)
		}
		handle(ev.FullDocument)
	}
	if err := stream.Err(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return ctx.Err()
}
