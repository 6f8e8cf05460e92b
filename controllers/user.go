package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boyidapuvivek/CaptureRideBackend/middleware"
	"github.com/boyidapuvivek/CaptureRideBackend/services"
	"github.com/boyidapuvivek/CaptureRideBackend/utils"
)

// Auth registers the credential endpoints that need no bearer token.
func Auth(r *gin.Engine) {
	users := r.Group("/api/v1/users")
	{
		users.POST("/register", RegisterUser)
		users.POST("/login", LoginUser)
		users.POST("/refresh-token", RefreshAccessToken)
	}
}

// User registers the endpoints acting on the logged-in user.
func User(r *gin.Engine, uploads services.Uploader) {
	users := r.Group("/api/v1/users")
	{
		users.POST("/logout", LogoutUser)
		users.POST("/change-password", ChangeCurrentPassword)
		users.PATCH("/update-profile-image", UpdateProfileImage(uploads))
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusBadRequest, utils.ALL_FIELDS_REQUIRED)))
		return
	}

	user, err := services.RegisterUser(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		c.JSON(utils.FailedResponse(err))
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse(http.StatusCreated, user, "User registerd successfully"))
}

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func LoginUser(c *gin.Context) {
	var req loginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusBadRequest, utils.EMAIL_OR_USERNAME_REQUIRED)))
		return
	}

	result, err := services.LoginUser(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		c.JSON(utils.FailedResponse(err))
		return
	}

	setAuthCookies(c, result.AccessToken, result.RefreshToken)
	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, result, "User logged in successfully"))
}

func LogoutUser(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusUnauthorized, utils.UNAUTHORIZED_REQUEST)))
		return
	}

	if err := services.LogoutUser(c.Request.Context(), userID); err != nil {
		c.JSON(utils.FailedResponse(err))
		return
	}

	clearAuthCookies(c)
	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, gin.H{}, "User logged-out"))
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func RefreshAccessToken(c *gin.Context) {
	var req refreshRequest
	_ = c.BindJSON(&req)
	if req.RefreshToken == "" {
		req.RefreshToken, _ = c.Cookie("refreshToken")
	}

	result, err := services.RefreshTokens(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(utils.FailedResponse(err))
		return
	}

	setAuthCookies(c, result.AccessToken, result.RefreshToken)
	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, result, "Access token refreshed"))
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func ChangeCurrentPassword(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusUnauthorized, utils.UNAUTHORIZED_REQUEST)))
		return
	}

	var req changePasswordRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusBadRequest, utils.ALL_FIELDS_REQUIRED)))
		return
	}

	if err := services.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		c.JSON(utils.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, gin.H{}, "Password changed successfully"))
}

// UpdateProfileImage replaces the logged-in user's avatar with the uploaded
// multipart "avatar" file.
func UpdateProfileImage(uploads services.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusUnauthorized, utils.UNAUTHORIZED_REQUEST)))
			return
		}

		header, err := c.FormFile("avatar")
		if err != nil {
			c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusBadRequest, utils.AVATAR_REQUIRED)))
			return
		}
		f, err := header.Open()
		if err != nil {
			c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusBadRequest, utils.AVATAR_REQUIRED)))
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil || len(data) == 0 {
			c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusBadRequest, utils.AVATAR_REQUIRED)))
			return
		}

		user, err := services.UpdateProfileImage(c.Request.Context(), userID, data, header.Filename, uploads)
		if err != nil {
			c.JSON(utils.FailedResponse(err))
			return
		}
		c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, gin.H{"user": user}, "Profile image updated successfully"))
	}
}

func setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetCookie("accessToken", accessToken, 0, "/", "", true, true)
	c.SetCookie("refreshToken", refreshToken, 0, "/", "", true, true)
}

func clearAuthCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", true, true)
	c.SetCookie("refreshToken", "", -1, "/", "", true, true)
}
