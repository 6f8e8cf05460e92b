package services

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/boyidapuvivek/CaptureRideBackend/config"
	"github.com/boyidapuvivek/CaptureRideBackend/models"
	"github.com/boyidapuvivek/CaptureRideBackend/utils"
)

func AddBike(ctx context.Context, userID primitive.ObjectID, bikeNumber, bikeName string) (*models.Bike, error) {
	bikeNumber = strings.TrimSpace(bikeNumber)
	bikeName = strings.TrimSpace(bikeName)
	if bikeNumber == "" || bikeName == "" {
		return nil, utils.NewApiError(http.StatusBadRequest, utils.BIKE_FIELDS_REQUIRED)
	}

	now := time.Now()
	bike := models.Bike{
		UserID:     userID,
		BikeName:   bikeName,
		BikeNumber: bikeNumber,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	coll := config.OpenCollection(config.BikeCollection)
	res, err := coll.InsertOne(ctx, bike)
	if err != nil {
		log.Println("Error inserting bike:", err)
		return nil, utils.NewApiError(http.StatusInternalServerError, utils.BIKE_REGISTRATION_FAILED)
	}
	bike.ID = res.InsertedID.(primitive.ObjectID)
	return &bike, nil
}

func GetBikes(ctx context.Context, userID primitive.ObjectID) ([]models.Bike, error) {
	coll := config.OpenCollection(config.BikeCollection)

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		log.Println("Error fetching bikes:", err)
		return nil, err
	}

	bikes := []models.Bike{}
	if err := cursor.All(ctx, &bikes); err != nil {
		return nil, err
	}
	return bikes, nil
}

func DeleteBike(ctx context.Context, userID primitive.ObjectID, bikeID string) error {
	if bikeID == "" {
		return utils.NewApiError(http.StatusBadRequest, utils.BIKE_ID_REQUIRED)
	}
	objID, err := primitive.ObjectIDFromHex(bikeID)
	if err != nil {
		return utils.NewApiError(http.StatusNotFound, utils.BIKE_NOT_FOUND)
	}

	coll := config.OpenCollection(config.BikeCollection)
	filter := bson.M{"_id": objID, "userId": userID}

	res, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.NewApiError(http.StatusNotFound, utils.BIKE_NOT_FOUND)
	}
	return nil
}
