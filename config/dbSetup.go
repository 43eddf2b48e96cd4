package config

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Collections struct {
	Users   *mongo.Collection
	Posts   *mongo.Collection
	Reviews *mongo.Collection
}

func ConnectDB(ctx context.Context, cfg MongoConfig, logger *zap.Logger) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("MongoDB ping failed: %w", err)
	}

	logger.Info("Connected to MongoDB", zap.String("database", cfg.Database))
	return client, nil
}

func InitCollections(client *mongo.Client, dbName string) Collections {
	db := client.Database(dbName)
	return Collections{
		Users:   db.Collection("users"),
		Posts:   db.Collection("posts"),
		Reviews: db.Collection("reviews"),
	}
}

var (
	userIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	postIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "geometry", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "author", Value: 1}, {Key: "_id", Value: -1}}},
	}
	// One review per user per post. Concurrent submits that both pass the
	// handler's existence check fail here with a duplicate key.
	reviewIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "post", Value: 1}, {Key: "author", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
)

// EnsureIndexes creates the unique user keys, the 2dsphere index the
// proximity filter needs, and the unique review key.
func EnsureIndexes(ctx context.Context, c Collections) error {
	if _, err := c.Users.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if _, err := c.Posts.Indexes().CreateMany(ctx, postIndexes); err != nil {
		return fmt.Errorf("post indexes: %w", err)
	}
	if _, err := c.Reviews.Indexes().CreateMany(ctx, reviewIndexes); err != nil {
		return fmt.Errorf("review indexes: %w", err)
	}
	return nil
}

func CloseDBConnection(client *mongo.Client, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logger.Error("Error closing MongoDB connection", zap.Error(err))
		return
	}
	logger.Info("MongoDB connection closed")
}
