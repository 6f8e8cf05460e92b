package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/boyidapuvivek/CaptureRideBackend/utils"
)

func TestInsertUserErrorMapsDuplicateKeyToConflict(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}

	err := insertUserError(dup)
	assert.Equal(t, utils.USER_EXISTS, err.Error())
	assert.Equal(t, http.StatusConflict, utils.StatusOf(err))
}

func TestInsertUserErrorKeepsOtherFailuresInternal(t *testing.T) {
	err := insertUserError(errors.New("connection reset"))
	assert.Equal(t, utils.USER_REGISTRATION_FAILED, err.Error())
	assert.Equal(t, http.StatusInternalServerError, utils.StatusOf(err))
}

func TestUpdateProfileImageRequiresContent(t *testing.T) {
	_, err := UpdateProfileImage(context.Background(), primitive.NewObjectID(), nil, "avatar.jpg", nil)
	assert.Equal(t, utils.AVATAR_REQUIRED, err.Error())
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
}
