package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boyidapuvivek/CaptureRideBackend/services"
	"github.com/boyidapuvivek/CaptureRideBackend/utils"
)

type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, _ []byte, filename string) (*services.UploadResult, error) {
	return &services.UploadResult{URL: "https://cdn/" + filename, PublicID: "pub-" + filename}, nil
}

func (stubUploader) Destroy(context.Context, string) error { return nil }

type stubRideStore struct{}

func (stubRideStore) ApplyReconcileUpdate(context.Context, primitive.ObjectID, bson.M) error {
	return nil
}

// intakeRouter mounts AddRide behind a fake authenticated user, the way the
// auth middleware would.
func intakeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	rec := services.NewReconciler(stubUploader{}, stubRideStore{})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", primitive.NewObjectID())
	})
	r.POST("/api/v1/ride/addRide", AddRide(rec))
	return r
}

type multipartRequest struct {
	fields map[string]string
	files  map[string][]byte
}

func (m multipartRequest) build(t *testing.T) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range m.fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, data := range m.files {
		fw, err := w.CreateFormFile(field, field+".jpg")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ride/addRide", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func allFields() map[string]string {
	return map[string]string{
		"roomNumber":    "101",
		"customerName":  "Jane",
		"phoneNumber":   "5551234",
		"vehicleNumber": "KA01AB1234",
	}
}

func allFiles() map[string][]byte {
	return map[string][]byte{
		"aadharPhoto":   []byte("jpeg-a"),
		"dlPhoto":       []byte("jpeg-d"),
		"customerPhoto": []byte("jpeg-c"),
	}
}

func TestAddRideRejectsMissingFile(t *testing.T) {
	files := allFiles()
	delete(files, "dlPhoto")

	w := httptest.NewRecorder()
	intakeRouter().ServeHTTP(w, multipartRequest{fields: allFields(), files: files}.build(t))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, utils.ALL_PHOTOS_REQUIRED, resp.Message)
	assert.False(t, resp.Success)
}

func TestAddRideRejectsEmptyFile(t *testing.T) {
	files := allFiles()
	files["customerPhoto"] = nil

	w := httptest.NewRecorder()
	intakeRouter().ServeHTTP(w, multipartRequest{fields: allFields(), files: files}.build(t))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, utils.EMPTY_PHOTO_UPLOAD, resp.Message)
}

func TestAddRideRejectsMissingFields(t *testing.T) {
	fields := allFields()
	fields["customerName"] = "   "

	w := httptest.NewRecorder()
	intakeRouter().ServeHTTP(w, multipartRequest{fields: fields, files: allFiles()}.build(t))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, utils.ALL_FIELDS_REQUIRED, resp.Message)
}

func TestAddRideRejectsUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := services.NewReconciler(stubUploader{}, stubRideStore{})
	r := gin.New()
	r.POST("/api/v1/ride/addRide", AddRide(rec))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest{fields: allFields(), files: allFiles()}.build(t))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
