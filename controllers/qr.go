package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boyidapuvivek/CaptureRideBackend/middleware"
	"github.com/boyidapuvivek/CaptureRideBackend/services"
	"github.com/boyidapuvivek/CaptureRideBackend/utils"
)

func Qr(r *gin.Engine, uploads services.Uploader) {
	qr := r.Group("/api/v1/qr")
	{
		qr.POST("/addQr", AddQr(uploads))
		qr.GET("/getQr", GetQr)
		qr.DELETE("/deleteQr", DeleteQr(uploads))
	}
}

func AddQr(uploads services.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusUnauthorized, utils.UNAUTHORIZED_REQUEST)))
			return
		}

		photo, err := readFormFile(c, "qrPhoto")
		if err != nil {
			c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusBadRequest, utils.QR_PHOTO_REQUIRED)))
			return
		}

		qr, err := services.AddQr(c.Request.Context(), userID, c.PostForm("bankName"), photo, uploads)
		if err != nil {
			c.JSON(utils.FailedResponse(err))
			return
		}
		c.JSON(http.StatusCreated, utils.SuccessResponse(http.StatusCreated, gin.H{"qr": qr}, "Qr successfully uploaded"))
	}
}

func GetQr(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusUnauthorized, utils.UNAUTHORIZED_REQUEST)))
		return
	}

	qrs, err := services.GetQrs(c.Request.Context(), userID)
	if err != nil {
		c.JSON(utils.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, gin.H{"qrs": qrs}, "Fetched user's Qr Documents successfully"))
}

func DeleteQr(uploads services.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusUnauthorized, utils.UNAUTHORIZED_REQUEST)))
			return
		}

		if err := services.DeleteQr(c.Request.Context(), userID, c.Query("id"), uploads); err != nil {
			c.JSON(utils.FailedResponse(err))
			return
		}
		c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, gin.H{}, "QR deleted successfully"))
	}
}
