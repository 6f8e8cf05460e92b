package services

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/boyidapuvivek/CaptureRideBackend/config"
	"github.com/boyidapuvivek/CaptureRideBackend/models"
	"github.com/boyidapuvivek/CaptureRideBackend/utils"
)

/*
* Upload the QR photo synchronously, this endpoint has no background pipeline
* Store the returned URL and public id with the owner
 */
func AddQr(ctx context.Context, userID primitive.ObjectID, bankName string, photo PhotoFile, uploads Uploader) (*models.Qr, error) {
	if photo.Name == "" || len(photo.Data) == 0 {
		return nil, utils.NewApiError(http.StatusBadRequest, utils.QR_PHOTO_REQUIRED)
	}

	res, err := uploads.Upload(ctx, photo.Data, photo.Name)
	if err != nil {
		log.Println("Error uploading qr photo:", err)
		return nil, utils.NewApiError(http.StatusInternalServerError, utils.QR_UPLOAD_FAILED)
	}

	now := time.Now()
	qr := models.Qr{
		UserID:          userID,
		BankName:        strings.TrimSpace(bankName),
		QrPhoto:         res.URL,
		QrPhotoPublicID: res.PublicID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	coll := config.OpenCollection(config.QrCollection)
	insertRes, err := coll.InsertOne(ctx, qr)
	if err != nil {
		log.Println("Error inserting qr:", err)
		return nil, utils.NewApiError(http.StatusInternalServerError, utils.QR_UPLOAD_FAILED)
	}
	qr.ID = insertRes.InsertedID.(primitive.ObjectID)
	return &qr, nil
}

func GetQrs(ctx context.Context, userID primitive.ObjectID) ([]models.Qr, error) {
	coll := config.OpenCollection(config.QrCollection)

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		log.Println("Error fetching qrs:", err)
		return nil, err
	}

	qrs := []models.Qr{}
	if err := cursor.All(ctx, &qrs); err != nil {
		return nil, err
	}
	return qrs, nil
}

/*
* Find the QR filtered by both id and owner
* The remote image must be destroyed before the row goes, a dangling remote
* asset here has no record pointing at it anymore
 */
func DeleteQr(ctx context.Context, userID primitive.ObjectID, qrID string, uploads Uploader) error {
	objID, err := primitive.ObjectIDFromHex(qrID)
	if err != nil {
		return utils.NewApiError(http.StatusNotFound, utils.QR_NOT_FOUND)
	}

	coll := config.OpenCollection(config.QrCollection)
	filter := bson.M{"_id": objID, "userId": userID}

	var qr models.Qr
	if err := coll.FindOne(ctx, filter).Decode(&qr); err != nil {
		if err == mongo.ErrNoDocuments {
			return utils.NewApiError(http.StatusNotFound, utils.QR_NOT_FOUND)
		}
		return err
	}

	if err := uploads.Destroy(ctx, qr.QrPhotoPublicID); err != nil {
		log.Println("Error deleting qr photo from cloudinary:", err)
		return utils.NewApiError(http.StatusInternalServerError, utils.QR_DELETE_FAILED)
	}

	if _, err := coll.DeleteOne(ctx, filter); err != nil {
		return err
	}
	return nil
}
