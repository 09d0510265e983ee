package database

import (
	"context"
	"fmt"
	"time"

	"beautyboosters/config"
	"beautyboosters/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const defaultDatabaseName = "beautyboosters"

var (
	// MongoClient is the global MongoDB client instance.
	MongoClient *mongo.Client
	// DB is the application database on MongoClient.
	DB *mongo.Database
)

// InitDB connects to MongoDB and selects the configured database.
func InitDB() (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	name := config.AppConfig.DatabaseName
	if name == "" {
		name = defaultDatabaseName
	}
	MongoClient = client
	DB = client.Database(name)
	utils.GetLogger().Info("Connected to MongoDB", zap.String("database", name))
	return DB, nil
}

// Close disconnects the global client.
func Close(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}
