package services

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/boyidapuvivek/CaptureRideBackend/config"
	"github.com/boyidapuvivek/CaptureRideBackend/models"
	"github.com/boyidapuvivek/CaptureRideBackend/utils"
)

// RideStore is the mongo-backed ride record store. Reconciliation updates go
// through ApplyReconcileUpdate only, which together with RegisterRide keeps
// the ride single-writer-per-phase without locks.
type RideStore struct{}

func NewRideStore() *RideStore {
	return &RideStore{}
}

func (s *RideStore) ApplyReconcileUpdate(ctx context.Context, rideID primitive.ObjectID, update bson.M) error {
	coll := config.OpenCollection(config.RideCollection)
	_, err := coll.UpdateByID(ctx, rideID, bson.M{"$set": update})
	return err
}

type RideInput struct {
	RoomNumber    string
	CustomerName  string
	PhoneNumber   string
	VehicleNumber string
}

func validateRideInput(input RideInput, photos RidePhotos) error {
	fields := []string{input.RoomNumber, input.CustomerName, input.PhoneNumber, input.VehicleNumber}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return utils.NewApiError(http.StatusBadRequest, utils.ALL_FIELDS_REQUIRED)
		}
	}
	for _, p := range []PhotoFile{photos.Aadhar, photos.Dl, photos.Customer} {
		if p.Name == "" {
			return utils.NewApiError(http.StatusBadRequest, utils.ALL_PHOTOS_REQUIRED)
		}
		if len(p.Data) == 0 {
			return utils.NewApiError(http.StatusBadRequest, utils.EMPTY_PHOTO_UPLOAD)
		}
	}
	return nil
}

/*
* Validate the four scalar fields and the three photo payloads
* Insert the ride with every photo field holding the pending sentinel
* Hand the raw photo bytes to the reconciler on a detached goroutine
* Nothing fallible runs between the insert and the handoff, so a created ride
* always gets its reconciliation pass
 */
func RegisterRide(ctx context.Context, userID primitive.ObjectID, input RideInput, photos RidePhotos, rec *Reconciler) (*models.Ride, error) {
	if err := validateRideInput(input, photos); err != nil {
		return nil, err
	}

	now := time.Now()
	ride := models.Ride{
		UserID:              userID,
		RoomNumber:          strings.TrimSpace(input.RoomNumber),
		CustomerName:        strings.TrimSpace(input.CustomerName),
		PhoneNumber:         strings.TrimSpace(input.PhoneNumber),
		VehicleNumber:       strings.TrimSpace(input.VehicleNumber),
		AadharPhoto:         models.PhotoPending,
		AadharPublicPhoto:   models.PhotoPending,
		DlPhoto:             models.PhotoPending,
		DlPublicPhoto:       models.PhotoPending,
		CustomerPhoto:       models.PhotoPending,
		CustomerPublicPhoto: models.PhotoPending,
		Status:              models.RideStatusProcessing,
		Error:               models.RideNoError,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	coll := config.OpenCollection(config.RideCollection)
	res, err := coll.InsertOne(ctx, ride)
	if err != nil {
		log.Println("Error inserting ride:", err)
		return nil, utils.NewApiError(http.StatusInternalServerError, utils.RIDE_REGISTRATION_FAILED)
	}
	ride.ID = res.InsertedID.(primitive.ObjectID)

	go rec.Run(ride.ID, photos)

	return &ride, nil
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalRides  int64 `json:"totalRides"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

func NewPagination(total int64, page, limit int) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalRides:  total,
		HasNext:     int64(page*limit) < total,
		HasPrev:     page > 1,
	}
}

// buildRideFilter scopes the query to the owner and, when a search term is
// given, adds a case-insensitive substring match across the ride's customer
// name, room, phone and vehicle fields.
func buildRideFilter(userID primitive.ObjectID, search string) bson.M {
	filter := bson.M{"userId": userID}
	search = strings.TrimSpace(search)
	if search == "" {
		return filter
	}

	re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	filter["$or"] = bson.A{
		bson.M{"customerName": re},
		bson.M{"roomNumber": re},
		bson.M{"phoneNumber": re},
		bson.M{"vehicleNumber": re},
	}
	return filter
}

func ListRides(ctx context.Context, userID primitive.ObjectID, page, limit int, search string) ([]models.Ride, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	coll := config.OpenCollection(config.RideCollection)
	filter := buildRideFilter(userID, search)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		log.Println("Error counting rides:", err)
		return nil, Pagination{}, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		log.Println("Error retrieving rides:", err)
		return nil, Pagination{}, err
	}

	rides := []models.Ride{}
	if err := cursor.All(ctx, &rides); err != nil {
		return nil, Pagination{}, err
	}

	return rides, NewPagination(total, page, limit), nil
}

/*
* Find the ride filtered by both id and owner, not-found covers both a missing
* ride and somebody else's ride
* Destroy the uploaded photos concurrently, best effort; slots still holding
* the pending sentinel are skipped so no delete call carries a sentinel ref
* Delete the row regardless of how many destroys succeeded
 */
func DeleteRide(ctx context.Context, userID primitive.ObjectID, rideID string, uploads Uploader) error {
	if rideID == "" {
		return utils.NewApiError(http.StatusBadRequest, utils.RIDE_ID_REQUIRED)
	}
	objID, err := primitive.ObjectIDFromHex(rideID)
	if err != nil {
		return utils.NewApiError(http.StatusNotFound, utils.RIDE_NOT_FOUND)
	}

	coll := config.OpenCollection(config.RideCollection)
	filter := bson.M{"_id": objID, "userId": userID}

	var ride models.Ride
	if err := coll.FindOne(ctx, filter).Decode(&ride); err != nil {
		if err == mongo.ErrNoDocuments {
			return utils.NewApiError(http.StatusNotFound, utils.RIDE_NOT_FOUND)
		}
		return err
	}

	var wg sync.WaitGroup
	for _, publicID := range ride.PublicPhotoIDs() {
		wg.Add(1)
		go func(publicID string) {
			defer wg.Done()
			if err := uploads.Destroy(ctx, publicID); err != nil {
				log.Printf("Failed to delete photo %s for ride %s: %v", publicID, rideID, err)
			}
		}(publicID)
	}
	wg.Wait()

	if _, err := coll.DeleteOne(ctx, filter); err != nil {
		log.Println("Error deleting ride:", err)
		return err
	}
	return nil
}
