package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boyidapuvivek/CaptureRideBackend/middleware"
	"github.com/boyidapuvivek/CaptureRideBackend/services"
	"github.com/boyidapuvivek/CaptureRideBackend/utils"
)

func Bike(r *gin.Engine) {
	bike := r.Group("/api/v1/bike")
	{
		bike.POST("/addBike", AddBike)
		bike.GET("/getBikes", GetBikes)
		bike.DELETE("/deleteBike", DeleteBike)
	}
}

type addBikeRequest struct {
	BikeNumber string `json:"bikeNumber"`
	BikeName   string `json:"bikeName"`
}

func AddBike(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusUnauthorized, utils.UNAUTHORIZED_REQUEST)))
		return
	}

	var req addBikeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusBadRequest, utils.BIKE_FIELDS_REQUIRED)))
		return
	}

	bike, err := services.AddBike(c.Request.Context(), userID, req.BikeNumber, req.BikeName)
	if err != nil {
		c.JSON(utils.FailedResponse(err))
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse(http.StatusCreated, gin.H{"bike": bike}, "Bike successfully added"))
}

func GetBikes(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusUnauthorized, utils.UNAUTHORIZED_REQUEST)))
		return
	}

	bikes, err := services.GetBikes(c.Request.Context(), userID)
	if err != nil {
		c.JSON(utils.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, gin.H{"bikes": bikes}, "Fetched user's bikes successfully"))
}

func DeleteBike(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusUnauthorized, utils.UNAUTHORIZED_REQUEST)))
		return
	}

	if err := services.DeleteBike(c.Request.Context(), userID, c.Query("id")); err != nil {
		c.JSON(utils.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, gin.H{}, "Bike deleted successfully"))
}
