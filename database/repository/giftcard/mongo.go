// File: database/repository/giftcard/mongo.go
package giftcardRepo

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

var ErrDuplicateCode = errors.New("discount code already exists")

// DiscountCodeRepository persists discount codes.
type DiscountCodeRepository interface {
	CodeExists(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, dc *models.DiscountCode) error
}

type MongoDiscountCodeRepo struct {
	coll *mongo.Collection
}

func NewMongoDiscountCodeRepo(db *mongo.Database) *MongoDiscountCodeRepo {
	return &MongoDiscountCodeRepo{coll: db.Collection("discount_codes")}
}

// EnsureIndexes creates the unique code index.
func (r *MongoDiscountCodeRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_code"),
	})
	if err != nil {
		return fmt.Errorf("failed to create discount code indexes: %w", err)
	}
	return nil
}

func (r *MongoDiscountCodeRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"code": code}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MongoDiscountCodeRepo) Create(ctx context.Context, dc *models.DiscountCode) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, dc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateCode
		}
		return err
	}
	return nil
}
