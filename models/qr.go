package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Qr struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"userId" bson:"userId"`
	BankName        string             `json:"bankName" bson:"bankName"`
	QrPhoto         string             `json:"qrPhoto" bson:"qrPhoto"`
	QrPhotoPublicID string             `json:"qrPhotoPublicId" bson:"qrPhotoPublicId"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}
