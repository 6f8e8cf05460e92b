package config

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UserCollection = "users"
	RideCollection = "rides"
	BikeCollection = "bikes"
	QrCollection   = "qrs"
	OtpCollection  = "otps"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

func ConnectDB() error {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		return errors.New("MONGODB_URI is not set")
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "captureride"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := c.Ping(ctx, nil); err != nil {
		return err
	}

	client = c
	db = c.Database(dbName)
	log.Println("Connected to MongoDB, database:", dbName)
	return nil
}

func OpenCollection(name string) *mongo.Collection {
	return db.Collection(name)
}

func DisconnectDB(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

/*
* Create the indexes the collections rely on
* OTP docs expire at expiresAt via a TTL index
* OTP lookups filter by email and purpose
* Ride listing filters by userId and sorts by createdAt
 */
func EnsureIndexes(ctx context.Context) error {
	otps := OpenCollection(OtpCollection)
	_, err := otps.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}, {Key: "purpose", Value: 1}},
		},
	})
	if err != nil {
		return err
	}

	rides := OpenCollection(RideCollection)
	_, err = rides.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return err
	}

	users := OpenCollection(UserCollection)
	_, err = users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}
