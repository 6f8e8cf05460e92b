package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ride statuses. A ride starts in processing and moves to exactly one of the
// other three; it never transitions again after that.
const (
	RideStatusProcessing     = "processing"
	RideStatusCompleted      = "completed"
	RideStatusPartialFailure = "partial_failure"
	RideStatusFailed         = "failed"
)

// PhotoPending occupies every photo field until the background upload settles.
const PhotoPending = "pending"

const RideNoError = "NO ERROR"

type Ride struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID        primitive.ObjectID `json:"userId" bson:"userId"`
	RoomNumber    string             `json:"roomNumber" bson:"roomNumber"`
	CustomerName  string             `json:"customerName" bson:"customerName"`
	PhoneNumber   string             `json:"phoneNumber" bson:"phoneNumber"`
	VehicleNumber string             `json:"vehicleNumber" bson:"vehicleNumber"`

	AadharPhoto         string `json:"aadharPhoto" bson:"aadharPhoto"`
	AadharPublicPhoto   string `json:"aadharPublicPhoto" bson:"aadharPublicPhoto"`
	DlPhoto             string `json:"dlPhoto" bson:"dlPhoto"`
	DlPublicPhoto       string `json:"dlPublicPhoto" bson:"dlPublicPhoto"`
	CustomerPhoto       string `json:"customerPhoto" bson:"customerPhoto"`
	CustomerPublicPhoto string `json:"customerPublicPhoto" bson:"customerPublicPhoto"`

	AadharPhotoError   string `json:"aadharPhotoError,omitempty" bson:"aadharPhotoError,omitempty"`
	DlPhotoError       string `json:"dlPhotoError,omitempty" bson:"dlPhotoError,omitempty"`
	CustomerPhotoError string `json:"customerPhotoError,omitempty" bson:"customerPhotoError,omitempty"`

	Status    string    `json:"status" bson:"status"`
	Error     string    `json:"error" bson:"error"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// PublicPhotoIDs returns the deletable upload references of the ride,
// skipping slots still holding the pending sentinel.
func (r Ride) PublicPhotoIDs() []string {
	var ids []string
	for _, id := range []string{r.AadharPublicPhoto, r.DlPublicPhoto, r.CustomerPublicPhoto} {
		if id != "" && id != PhotoPending {
			ids = append(ids, id)
		}
	}
	return ids
}
