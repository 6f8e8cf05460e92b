package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boyidapuvivek/CaptureRideBackend/models"
	"github.com/boyidapuvivek/CaptureRideBackend/services"
)

func authTestRouter(t *testing.T) (*gin.Engine, *primitive.ObjectID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var captured primitive.ObjectID
	r := gin.New()
	r.Use(Auth())
	r.GET("/whoami", func(c *gin.Context) {
		id, ok := UserID(c)
		require.True(t, ok)
		captured = id
		c.Status(http.StatusOK)
	})
	return r, &captured
}

func TestAuthWithBearerToken(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-secret")

	user := models.User{ID: primitive.NewObjectID(), Username: "vivek", Email: "v@e.com"}
	token, err := services.GenerateAccessToken(user)
	require.NoError(t, err)

	r, captured := authTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.ID, *captured)
}

func TestAuthWithCookie(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-secret")

	user := models.User{ID: primitive.NewObjectID()}
	token, err := services.GenerateAccessToken(user)
	require.NoError(t, err)

	r, captured := authTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.ID, *captured)
}

func TestAuthRejectsMissingToken(t *testing.T) {
	r, _ := authTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-secret")

	r, _ := authTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsTokenSignedWithOtherSecret(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "attacker-secret")
	user := models.User{ID: primitive.NewObjectID()}
	token, err := services.GenerateAccessToken(user)
	require.NoError(t, err)

	t.Setenv("ACCESS_TOKEN_SECRET", "server-secret")
	r, _ := authTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
