package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/boyidapuvivek/CaptureRideBackend/controllers"
	"github.com/boyidapuvivek/CaptureRideBackend/middleware"
	"github.com/boyidapuvivek/CaptureRideBackend/services"
)

func Routes(r *gin.Engine, rec *services.Reconciler, uploads services.Uploader, mailer services.Mailer) {

	//public
	controllers.Auth(r)
	controllers.Otp(r, mailer)

	//privateroutes
	r.Use(middleware.Auth())
	controllers.User(r, uploads)
	controllers.Ride(r, rec, uploads)
	controllers.Bike(r)
	controllers.Qr(r, uploads)
	controllers.OtpAdmin(r)
}
