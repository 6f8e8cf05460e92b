package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boyidapuvivek/CaptureRideBackend/models"
	"github.com/boyidapuvivek/CaptureRideBackend/services"
	"github.com/boyidapuvivek/CaptureRideBackend/utils"
)

// Otp registers the public OTP endpoints.
func Otp(r *gin.Engine, mailer services.Mailer) {
	otp := r.Group("/api/v1/otp")
	{
		otp.POST("/generate", GenerateOTP(mailer))
		otp.POST("/verify", VerifyOTP)
		otp.POST("/resend", ResendOTP(mailer))
		otp.GET("/status", CheckOTPStatus)
	}
}

// OtpAdmin registers the OTP endpoints that need an authenticated caller.
func OtpAdmin(r *gin.Engine) {
	otp := r.Group("/api/v1/otp")
	{
		otp.DELETE("/cleanup", CleanupExpiredOTPs)
	}
}

type otpRequest struct {
	Email   string `json:"email"`
	Otp     string `json:"otp"`
	Purpose string `json:"purpose"`
}

func (r *otpRequest) purposeOrDefault() string {
	if r.Purpose == "" {
		return models.OtpPurposeEmailVerification
	}
	return r.Purpose
}

func GenerateOTP(mailer services.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req otpRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusBadRequest, utils.EMAIL_REQUIRED)))
			return
		}

		otp, err := services.GenerateAndSendOTP(c.Request.Context(), req.Email, req.purposeOrDefault(), mailer)
		if err != nil {
			c.JSON(utils.FailedResponse(err))
			return
		}

		c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, gin.H{
			"email":     otp.Email,
			"purpose":   otp.Purpose,
			"expiresAt": otp.ExpiresAt,
			"emailSent": true,
		}, "OTP sent successfully to your email"))
	}
}

func VerifyOTP(c *gin.Context) {
	var req otpRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusBadRequest, utils.EMAIL_AND_OTP_REQUIRED)))
		return
	}

	purpose := req.purposeOrDefault()
	if err := services.VerifyOTP(c.Request.Context(), req.Email, req.Otp, purpose); err != nil {
		c.JSON(utils.FailedResponse(err))
		return
	}

	data := gin.H{
		"email":    req.Email,
		"purpose":  purpose,
		"verified": true,
	}
	switch purpose {
	case models.OtpPurposePasswordReset:
		data["message"] = "OTP verified. You can now reset your password."
		data["resetAllowed"] = true
	case models.OtpPurposeLoginVerification:
		data["message"] = "Login verification successful."
		data["loginAllowed"] = true
	default:
		data["message"] = "Email verified successfully. You can now complete your registration."
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, data, "OTP verified successfully"))
}

func ResendOTP(mailer services.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req otpRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(utils.FailedResponse(utils.NewApiError(http.StatusBadRequest, utils.EMAIL_REQUIRED)))
			return
		}

		otp, err := services.ResendOTP(c.Request.Context(), req.Email, req.purposeOrDefault(), mailer)
		if err != nil {
			c.JSON(utils.FailedResponse(err))
			return
		}

		c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, gin.H{
			"email":     otp.Email,
			"purpose":   otp.Purpose,
			"expiresAt": otp.ExpiresAt,
			"emailSent": true,
		}, "OTP resent successfully"))
	}
}

func CheckOTPStatus(c *gin.Context) {
	purpose := c.Query("purpose")
	if purpose == "" {
		purpose = models.OtpPurposeEmailVerification
	}

	status, err := services.CheckOTPStatus(c.Request.Context(), c.Query("email"), purpose)
	if err != nil {
		c.JSON(utils.FailedResponse(err))
		return
	}

	message := "Active OTP found"
	if !status.HasActiveOTP {
		message = "No active OTP found"
		if status.IsExpired != nil && *status.IsExpired {
			message = "OTP has expired"
		}
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, status, message))
}

func CleanupExpiredOTPs(c *gin.Context) {
	deleted, err := services.CleanupExpiredOTPs(c.Request.Context())
	if err != nil {
		c.JSON(utils.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, gin.H{
		"deletedCount": deleted,
	}, "Expired OTPs cleaned up successfully"))
}
