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
	"golang.org/x/crypto/bcrypt"

	"github.com/boyidapuvivek/CaptureRideBackend/config"
	"github.com/boyidapuvivek/CaptureRideBackend/models"
	"github.com/boyidapuvivek/CaptureRideBackend/utils"
)

/*
* Check the fields are not empty after trimming
* Check username or email exists already
* Hash the password and create the user
 */
func RegisterUser(ctx context.Context, username, email, password string) (*models.PublicUser, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || strings.TrimSpace(password) == "" {
		return nil, utils.NewApiError(http.StatusBadRequest, utils.ALL_FIELDS_REQUIRED)
	}

	coll := config.OpenCollection(config.UserCollection)

	count, err := coll.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewApiError(http.StatusConflict, utils.USER_EXISTS)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := models.User{
		Username:  username,
		Email:     email,
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := coll.InsertOne(ctx, user)
	if err != nil {
		return nil, insertUserError(err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)

	public := user.Public()
	return &public, nil
}

// insertUserError maps an InsertOne failure to the registration response. A
// concurrent register can slip past the count check; the unique indexes on
// username and email turn it into a duplicate-key error, which is still a 409.
func insertUserError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return utils.NewApiError(http.StatusConflict, utils.USER_EXISTS)
	}
	log.Println("Error inserting user:", err)
	return utils.NewApiError(http.StatusInternalServerError, utils.USER_REGISTRATION_FAILED)
}

type LoginResult struct {
	UserData     models.PublicUser `json:"userData"`
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
}

/*
* Find the user by email or username
* Compare the given password with the stored bcrypt hash
* Issue the access and refresh token pair and persist the refresh token
 */
func LoginUser(ctx context.Context, email, username, password string) (*LoginResult, error) {
	if email == "" && username == "" {
		return nil, utils.NewApiError(http.StatusBadRequest, utils.EMAIL_OR_USERNAME_REQUIRED)
	}

	coll := config.OpenCollection(config.UserCollection)

	var user models.User
	err := coll.FindOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": strings.ToLower(email)},
		bson.M{"username": username},
	}}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewApiError(http.StatusNotFound, utils.USER_NOT_FOUND)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, utils.NewApiError(http.StatusUnauthorized, utils.INVALID_PASSWORD)
	}

	accessToken, refreshToken, err := issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		UserData:     user.Public(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func issueTokenPair(ctx context.Context, user models.User) (string, string, error) {
	accessToken, err := GenerateAccessToken(user)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := GenerateRefreshToken(user)
	if err != nil {
		return "", "", err
	}

	coll := config.OpenCollection(config.UserCollection)
	_, err = coll.UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"refreshToken": refreshToken,
		"updatedAt":    time.Now(),
	}})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func LogoutUser(ctx context.Context, userID primitive.ObjectID) error {
	coll := config.OpenCollection(config.UserCollection)
	_, err := coll.UpdateByID(ctx, userID, bson.M{"$unset": bson.M{"refreshToken": 1}})
	return err
}

/*
* Verify the incoming refresh token and load its user
* Reject the token if it no longer matches the stored one, a rotated-out
* token cannot be replayed
* Issue a fresh pair
 */
func RefreshTokens(ctx context.Context, incomingToken string) (*LoginResult, error) {
	if incomingToken == "" {
		return nil, utils.NewApiError(http.StatusUnauthorized, utils.UNAUTHORIZED_REQUEST)
	}

	claims, err := ParseRefreshToken(incomingToken)
	if err != nil {
		return nil, utils.NewApiError(http.StatusUnauthorized, utils.INVALID_REFRESH_TOKEN)
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, utils.NewApiError(http.StatusUnauthorized, utils.INVALID_REFRESH_TOKEN)
	}

	user, err := FetchUserByID(ctx, userID)
	if err != nil {
		return nil, utils.NewApiError(http.StatusUnauthorized, utils.INVALID_REFRESH_TOKEN)
	}

	if user.RefreshToken != incomingToken {
		return nil, utils.NewApiError(http.StatusUnauthorized, utils.REFRESH_TOKEN_USED)
	}

	accessToken, refreshToken, err := issueTokenPair(ctx, *user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		UserData:     user.Public(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return utils.NewApiError(http.StatusBadRequest, utils.ALL_FIELDS_REQUIRED)
	}

	user, err := FetchUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return utils.NewApiError(http.StatusUnauthorized, utils.INVALID_PASSWORD)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	coll := config.OpenCollection(config.UserCollection)
	_, err = coll.UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		"password":  string(hashed),
		"updatedAt": time.Now(),
	}})
	return err
}

/*
* Upload the new avatar synchronously
* Point the user's avatar at the uploaded url and return the refreshed user
 */
func UpdateProfileImage(ctx context.Context, userID primitive.ObjectID, avatar []byte, filename string, uploads Uploader) (*models.PublicUser, error) {
	if len(avatar) == 0 {
		return nil, utils.NewApiError(http.StatusBadRequest, utils.AVATAR_REQUIRED)
	}

	res, err := uploads.Upload(ctx, avatar, filename)
	if err != nil {
		log.Println("Error uploading avatar:", err)
		return nil, utils.NewApiError(http.StatusInternalServerError, utils.AVATAR_UPLOAD_FAILED)
	}

	coll := config.OpenCollection(config.UserCollection)
	_, err = coll.UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		"avatar":    res.URL,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return nil, err
	}

	user, err := FetchUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

func FetchUserByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	coll := config.OpenCollection(config.UserCollection)

	var user models.User
	if err := coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewApiError(http.StatusNotFound, utils.USER_NOT_FOUND)
		}
		return nil, err
	}
	return &user, nil
}

func UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	coll := config.OpenCollection(config.UserCollection)
	count, err := coll.CountDocuments(ctx, bson.M{"email": strings.ToLower(email)})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
