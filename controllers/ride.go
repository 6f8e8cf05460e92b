package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/boyidapuvivek/CaptureRideBackend/middleware"
	"github.com/boyidapuvivek/CaptureRideBackend/services"
	"github.com/boyidapuvivek/CaptureRideBackend/utils"
)

func Ride(r *gin.Engine, rec *services.Reconciler, uploads services.Uploader) {
	ride := r.Group("/api/v1/ride")
	{
		ride.POST("/addRide", AddRide(rec))
		ride.GET("/getRides", GetRides)
		ride.DELETE("/deleteRide", DeleteRide(uploads))
	}
}

func readFormFile(c *gin.Context, field string) (services.PhotoFile, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return services.PhotoFile{}, utils.NewApiError(http.StatusBadRequest, utils.ALL_PHOTOS_REQUIRED)
	}
	f, err := header.Open()
	if err != nil {
		return services.PhotoFile{}, utils.NewApiError(http.StatusBadRequest, utils.EMPTY_PHOTO_UPLOAD)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil || len(data) == 0 {
		return services.PhotoFile{}, utils.NewApiError(http.StatusBadRequest, utils.EMPTY_PHOTO_UPLOAD)
	}
	return services.PhotoFile{Name: header.Filename, Data: data}, nil
}

// AddRide accepts the multipart registration, creates the ride in processing
// state and answers 202 right away; photo uploads continue in the background.
func AddRide(rec *services.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusUnauthorized, utils.UNAUTHORIZED_REQUEST)))
			return
		}

		input := services.RideInput{
			RoomNumber:    c.PostForm("roomNumber"),
			CustomerName:  c.PostForm("customerName"),
			PhoneNumber:   c.PostForm("phoneNumber"),
			VehicleNumber: c.PostForm("vehicleNumber"),
		}

		var photos services.RidePhotos
		var err error
		if photos.Aadhar, err = readFormFile(c, "aadharPhoto"); err != nil {
			c.JSON(utils.FailedResponse(err))
			return
		}
		if photos.Dl, err = readFormFile(c, "dlPhoto"); err != nil {
			c.JSON(utils.FailedResponse(err))
			return
		}
		if photos.Customer, err = readFormFile(c, "customerPhoto"); err != nil {
			c.JSON(utils.FailedResponse(err))
			return
		}

		ride, err := services.RegisterRide(c.Request.Context(), userID, input, photos, rec)
		if err != nil {
			c.JSON(utils.FailedResponse(err))
			return
		}

		c.JSON(http.StatusAccepted, utils.SuccessResponse(http.StatusAccepted, gin.H{
			"rideId":  ride.ID.Hex(),
			"status":  ride.Status,
			"message": "Ride registration initiated. Photos are being processed.",
		}, "Ride Process Started"))
	}
}

func GetRides(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusUnauthorized, utils.UNAUTHORIZED_REQUEST)))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	search := c.Query("search")

	rides, pagination, err := services.ListRides(c.Request.Context(), userID, page, limit, search)
	if err != nil {
		c.JSON(utils.FailedResponse(err))
		return
	}

	message := "Rides fetched successfully"
	if len(rides) == 0 {
		message = "No rides found"
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, gin.H{
		"rides":      rides,
		"pagination": pagination,
	}, message))
}

func DeleteRide(uploads services.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusUnauthorized, utils.UNAUTHORIZED_REQUEST)))
			return
		}

		if err := services.DeleteRide(c.Request.Context(), userID, c.Query("id"), uploads); err != nil {
			c.JSON(utils.FailedResponse(err))
			return
		}
		c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, nil, "Ride deleted successfully"))
	}
}
