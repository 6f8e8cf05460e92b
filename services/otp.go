package services

import (
	"context"
	"crypto/rand"
	"log"
	"math/big"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/boyidapuvivek/CaptureRideBackend/config"
	"github.com/boyidapuvivek/CaptureRideBackend/models"
	"github.com/boyidapuvivek/CaptureRideBackend/utils"
)

const (
	otpLength        = 6
	otpExpiryMinutes = 10
	// resendCooldown is how long after an OTP is created that a resend for
	// the same email and purpose gets rejected with 429.
	resendCooldown = 2 * time.Minute
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func GenerateOTPCode(length int) (string, error) {
	const digits = "0123456789"
	var sb strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		sb.WriteByte(digits[n.Int64()])
	}
	return sb.String(), nil
}

func validateOTPRequest(email, purpose string) error {
	if email == "" {
		return utils.NewApiError(http.StatusBadRequest, utils.EMAIL_REQUIRED)
	}
	if !emailRegex.MatchString(email) {
		return utils.NewApiError(http.StatusBadRequest, utils.INVALID_EMAIL)
	}
	if !models.IsValidOtpPurpose(purpose) {
		return utils.NewApiError(http.StatusBadRequest, utils.INVALID_OTP_PURPOSE)
	}
	return nil
}

// CreateOTP replaces any live code for the email and purpose with a fresh
// one; only one OTP per (email, purpose) is ever active.
func CreateOTP(ctx context.Context, email, purpose string) (*models.OTP, error) {
	coll := config.OpenCollection(config.OtpCollection)

	if _, err := coll.DeleteMany(ctx, bson.M{"email": email, "purpose": purpose}); err != nil {
		return nil, err
	}

	code, err := GenerateOTPCode(otpLength)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	otp := models.OTP{
		Email:     strings.ToLower(email),
		Otp:       code,
		Purpose:   purpose,
		Attempts:  0,
		IsUsed:    false,
		ExpiresAt: now.Add(otpExpiryMinutes * time.Minute),
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := coll.InsertOne(ctx, otp)
	if err != nil {
		return nil, err
	}
	otp.ID = res.InsertedID.(primitive.ObjectID)
	return &otp, nil
}

/*
* Validate email and purpose
* password_reset needs a matching user, email_verification must not have one
* Create the OTP, then send it; a failed send deletes the code again so a
* client can immediately retry generate
 */
func GenerateAndSendOTP(ctx context.Context, email, purpose string, mailer Mailer) (*models.OTP, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateOTPRequest(email, purpose); err != nil {
		return nil, err
	}

	exists, err := UserExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	switch purpose {
	case models.OtpPurposePasswordReset:
		if !exists {
			return nil, utils.NewApiError(http.StatusNotFound, utils.NO_USER_WITH_EMAIL)
		}
	case models.OtpPurposeEmailVerification:
		if exists {
			return nil, utils.NewApiError(http.StatusConflict, utils.EMAIL_ALREADY_REGISTERED)
		}
	}

	otp, err := CreateOTP(ctx, email, purpose)
	if err != nil {
		return nil, err
	}

	if err := mailer.SendOTPEmail(email, otp.Otp, purpose); err != nil {
		log.Println("Error sending OTP email:", err)
		coll := config.OpenCollection(config.OtpCollection)
		if _, delErr := coll.DeleteOne(ctx, bson.M{"_id": otp.ID}); delErr != nil {
			log.Println("Failed to delete OTP after send failure:", delErr)
		}
		return nil, utils.NewApiError(http.StatusInternalServerError, utils.OTP_EMAIL_FAILED)
	}

	return otp, nil
}

// ResendOTP is GenerateAndSendOTP behind a cooldown: a fresh code for the
// same email and purpose within the cooldown window is rejected.
func ResendOTP(ctx context.Context, email, purpose string, mailer Mailer) (*models.OTP, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateOTPRequest(email, purpose); err != nil {
		return nil, err
	}

	coll := config.OpenCollection(config.OtpCollection)
	filter := bson.M{
		"email":     email,
		"purpose":   purpose,
		"createdAt": bson.M{"$gte": time.Now().Add(-resendCooldown)},
	}
	count, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewApiError(http.StatusTooManyRequests, utils.OTP_RESEND_COOLDOWN)
	}

	return GenerateAndSendOTP(ctx, email, purpose, mailer)
}

/*
* Look up the live code for the email and purpose, every call burns an
* attempt whether or not the digits match
* Expired and attempt-exhausted codes are deleted on discovery
* A matching code is marked used so it cannot be replayed
 */
func VerifyOTP(ctx context.Context, email, code, purpose string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || code == "" {
		return utils.NewApiError(http.StatusBadRequest, utils.EMAIL_AND_OTP_REQUIRED)
	}
	if !models.IsValidOtpPurpose(purpose) {
		return utils.NewApiError(http.StatusBadRequest, utils.INVALID_OTP_PURPOSE)
	}

	coll := config.OpenCollection(config.OtpCollection)
	filter := bson.M{"email": email, "purpose": purpose, "isUsed": false}

	var otp models.OTP
	if err := coll.FindOne(ctx, filter).Decode(&otp); err != nil {
		if err == mongo.ErrNoDocuments {
			return utils.NewApiError(http.StatusNotFound, utils.NO_VALID_OTP)
		}
		return err
	}

	if _, err := coll.UpdateByID(ctx, otp.ID, bson.M{
		"$inc": bson.M{"attempts": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}); err != nil {
		return err
	}
	otp.Attempts++

	if otp.IsExpired() {
		if _, err := coll.DeleteOne(ctx, bson.M{"_id": otp.ID}); err != nil {
			log.Println("Failed to delete expired OTP:", err)
		}
		return utils.NewApiError(http.StatusBadRequest, utils.OTP_EXPIRED)
	}
	if otp.IsAttemptsExhausted() {
		if _, err := coll.DeleteOne(ctx, bson.M{"_id": otp.ID}); err != nil {
			log.Println("Failed to delete exhausted OTP:", err)
		}
		return utils.NewApiError(http.StatusBadRequest, utils.OTP_ATTEMPTS_EXCEEDED)
	}
	if otp.Otp != code {
		return utils.NewApiError(http.StatusBadRequest, utils.INVALID_OTP)
	}

	_, err := coll.UpdateByID(ctx, otp.ID, bson.M{"$set": bson.M{
		"isUsed":    true,
		"updatedAt": time.Now(),
	}})
	return err
}

// OTPStatus reports on the live code for an email and purpose. The detail
// fields are pointers so the no-active-code report carries only the first
// three fields, while a found code always reports isExpired and attemptsLeft,
// zero included.
type OTPStatus struct {
	Email        string     `json:"email"`
	Purpose      string     `json:"purpose"`
	HasActiveOTP bool       `json:"hasActiveOTP"`
	IsExpired    *bool      `json:"isExpired,omitempty"`
	AttemptsLeft *int       `json:"attemptsLeft,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	SentAt       *time.Time `json:"sentAt,omitempty"`
}

func CheckOTPStatus(ctx context.Context, email, purpose string) (*OTPStatus, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, utils.NewApiError(http.StatusBadRequest, utils.EMAIL_REQUIRED)
	}

	coll := config.OpenCollection(config.OtpCollection)
	filter := bson.M{"email": email, "purpose": purpose, "isUsed": false}

	var otp models.OTP
	if err := coll.FindOne(ctx, filter).Decode(&otp); err != nil {
		if err == mongo.ErrNoDocuments {
			return &OTPStatus{Email: email, Purpose: purpose, HasActiveOTP: false}, nil
		}
		return nil, err
	}

	expired := otp.IsExpired()
	attemptsLeft := otp.AttemptsLeft()
	return &OTPStatus{
		Email:        email,
		Purpose:      purpose,
		HasActiveOTP: !expired,
		IsExpired:    &expired,
		AttemptsLeft: &attemptsLeft,
		ExpiresAt:    &otp.ExpiresAt,
		SentAt:       &otp.CreatedAt,
	}, nil
}

// CleanupExpiredOTPs sweeps docs the TTL index has not collected yet.
func CleanupExpiredOTPs(ctx context.Context) (int64, error) {
	coll := config.OpenCollection(config.OtpCollection)
	res, err := coll.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lt": time.Now()}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
