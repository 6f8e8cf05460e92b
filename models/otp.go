package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OtpPurposeEmailVerification = "email_verification"
	OtpPurposePasswordReset     = "password_reset"
	OtpPurposeLoginVerification = "login_verification"
)

// MaxOtpAttempts is how many verification attempts a single code allows.
const MaxOtpAttempts = 3

func IsValidOtpPurpose(purpose string) bool {
	switch purpose {
	case OtpPurposeEmailVerification, OtpPurposePasswordReset, OtpPurposeLoginVerification:
		return true
	}
	return false
}

type OTP struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Otp       string             `json:"otp" bson:"otp"`
	Purpose   string             `json:"purpose" bson:"purpose"`
	Attempts  int                `json:"attempts" bson:"attempts"`
	IsUsed    bool               `json:"isUsed" bson:"isUsed"`
	ExpiresAt time.Time          `json:"expiresAt" bson:"expiresAt"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func (o OTP) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}

func (o OTP) IsAttemptsExhausted() bool {
	return o.Attempts >= MaxOtpAttempts
}

func (o OTP) AttemptsLeft() int {
	left := MaxOtpAttempts - o.Attempts
	if left < 0 {
		return 0
	}
	return left
}
