package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/alimikegami/food-rater/config"
	"github.com/alimikegami/food-rater/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

func ConnectToMongoDB(ctx context.Context, conf config.MongoDBConfig) (*mongo.Database, error) {
	clientOptions := options.Client().
		ApplyURI(fmt.Sprintf("mongodb://%s:%s", conf.DBHost, conf.DBPort)).
		SetMonitor(otelmongo.NewMonitor())

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, err
	}

	db := client.Database(conf.DBName)

	if err := EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureIndexes makes usernames unique; product and user ids are already
// unique as they are stored in _id.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(repository.UserCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		return fmt.Errorf("creating username index: %w", err)
	}

	_, err = db.Collection(repository.ProductCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("name"),
	})
	if err != nil {
		return fmt.Errorf("creating product name index: %w", err)
	}

	return nil
}
