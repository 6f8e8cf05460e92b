package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Bike struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId"`
	BikeName   string             `json:"bikeName" bson:"bikeName"`
	BikeNumber string             `json:"bikeNumber" bson:"bikeNumber"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}
