package di

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/config"
)

// MongoDatabase wraps the mongo handle and its client so lifecycle
// hooks can disconnect cleanly.
type MongoDatabase struct {
	DB     *mongo.Database
	Client *mongo.Client
}

// DatabaseModule provides database dependencies
var DatabaseModule = fx.Module("database",
	fx.Provide(provideMongoDatabase),
	fx.Invoke(createMongoIndexes),
)

func provideMongoDatabase(lc fx.Lifecycle, cfg *config.DatabaseConfig, logger *zap.Logger) (*MongoDatabase, error) {
	logger.Info("Connecting to MongoDB",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name),
	)

	clientOpts := options.Client().ApplyURI(cfg.MongoURI())
	client, err := mongo.Connect(context.Background(), clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(context.Background(), nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Name)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing MongoDB connection")
			return client.Disconnect(ctx)
		},
	})

	return &MongoDatabase{DB: db, Client: client}, nil
}

// createMongoIndexes creates the indexes every collection relies on.
func createMongoIndexes(mongoDB *MongoDatabase, logger *zap.Logger) error {
	ctx := context.Background()
	db := mongoDB.DB

	users := db.Collection("users")
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "numeric_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "referral.code", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "sessions.token", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "deleted_at", Value: 1}},
		},
	}
	if _, err := users.Indexes().CreateMany(ctx, userIndexes); err != nil {
		logger.Error("Failed to create user indexes", zap.Error(err))
		return err
	}

	contacts := db.Collection("contacts")
	contactIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "numeric_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "deleted_at", Value: 1}},
		},
	}
	if _, err := contacts.Indexes().CreateMany(ctx, contactIndexes); err != nil {
		logger.Error("Failed to create contact indexes", zap.Error(err))
		return err
	}

	applications := db.Collection("applications")
	applicationIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "numeric_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "kind", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "deleted_at", Value: 1}},
		},
	}
	if _, err := applications.Indexes().CreateMany(ctx, applicationIndexes); err != nil {
		logger.Error("Failed to create application indexes", zap.Error(err))
		return err
	}

	menuItems := db.Collection("menu_items")
	menuIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "numeric_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "deleted_at", Value: 1}},
		},
	}
	if _, err := menuItems.Indexes().CreateMany(ctx, menuIndexes); err != nil {
		logger.Error("Failed to create menu indexes", zap.Error(err))
		return err
	}

	logger.Info("MongoDB indexes created successfully")
	return nil
}
