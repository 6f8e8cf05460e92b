package utils

import (
	"errors"
	"net/http"
)

const (
	ALL_FIELDS_REQUIRED         = "All fields are required"
	ALL_PHOTOS_REQUIRED         = "All photos (Aadhar, DL, Customer) are required"
	EMPTY_PHOTO_UPLOAD          = "Uploaded photo has no content"
	RIDE_ID_REQUIRED            = "rideId is required in query"
	RIDE_NOT_FOUND              = "Ride not found or does not belong to the user"
	BIKE_FIELDS_REQUIRED        = "Bike number and name is required"
	BIKE_ID_REQUIRED            = "Bike id is required"
	BIKE_NOT_FOUND              = "Bike not found or not authorized to delete"
	QR_PHOTO_REQUIRED           = "qrPhoto is required"
	QR_NOT_FOUND                = "QR not found"
	QR_DELETE_FAILED            = "Failed to delete image from Cloudinary"
	UNAUTHORIZED_REQUEST        = "Unauthorized request"
	INVALID_ACCESS_TOKEN        = "Invalid Access Token"
	INVALID_REFRESH_TOKEN       = "Invalid refresh token"
	REFRESH_TOKEN_USED          = "Refresh token is already used or expired"
	USER_EXISTS                 = "Username or the Email already exists"
	USER_NOT_FOUND              = "User does not exists"
	EMAIL_OR_USERNAME_REQUIRED  = "User with this email or username is required"
	INVALID_PASSWORD            = "Password entered not valid"
	AVATAR_REQUIRED             = "Avatar file is required"
	AVATAR_UPLOAD_FAILED        = "Failed to upload avatar to cloudinary"
	EMAIL_REQUIRED              = "Email is required"
	INVALID_EMAIL               = "Please provide a valid email address"
	INVALID_OTP_PURPOSE         = "Invalid OTP purpose"
	EMAIL_AND_OTP_REQUIRED      = "Email and OTP are required"
	NO_USER_WITH_EMAIL          = "No user found with this email address"
	EMAIL_ALREADY_REGISTERED    = "Email is already registered and verified"
	NO_VALID_OTP                = "No valid OTP found for this email"
	INVALID_OTP                 = "Invalid OTP"
	OTP_EXPIRED                 = "OTP has expired"
	OTP_ATTEMPTS_EXCEEDED       = "Maximum attempts exceeded"
	OTP_RESEND_COOLDOWN         = "Please wait at least 2 minutes before requesting a new OTP"
	OTP_EMAIL_FAILED            = "Failed to send OTP email. Please try again."
	RIDE_REGISTRATION_FAILED    = "Something went wrong while registering ride"
	USER_REGISTRATION_FAILED    = "Something when wrong while registering the user"
	BIKE_REGISTRATION_FAILED    = "Something went wrong while adding bike"
	QR_UPLOAD_FAILED            = "Something went wrong while uploading qrPhoto"
	INTERNAL_ERROR              = "Internal server error"
)

// ApiError carries an HTTP status out of the service layer.
type ApiError struct {
	StatusCode int
	Message    string
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(statusCode int, message string) *ApiError {
	return &ApiError{StatusCode: statusCode, Message: message}
}

// StatusOf maps an error to the HTTP status it should surface with.
func StatusOf(err error) int {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}
