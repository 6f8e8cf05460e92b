package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boyidapuvivek/CaptureRideBackend/services"
	"github.com/boyidapuvivek/CaptureRideBackend/utils"
)

const userIDKey = "userId"

/*
* Take the access token from the cookie or the Authorization header
* Verify it and put the caller's id into the request context
 */
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("accessToken")
		if err != nil || token == "" {
			token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if token == "" {
			abort(c, utils.UNAUTHORIZED_REQUEST)
			return
		}

		claims, err := services.ParseAccessToken(token)
		if err != nil {
			abort(c, utils.INVALID_ACCESS_TOKEN)
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			abort(c, utils.INVALID_ACCESS_TOKEN)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated caller's id set by Auth.
func UserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}

func abort(c *gin.Context, message string) {
	status, resp := utils.FailedResponse(utils.NewApiError(http.StatusUnauthorized, message))
	c.AbortWithStatusJSON(status, resp)
}
