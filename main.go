package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/boyidapuvivek/CaptureRideBackend/config"
	"github.com/boyidapuvivek/CaptureRideBackend/jobs"
	"github.com/boyidapuvivek/CaptureRideBackend/routes"
	"github.com/boyidapuvivek/CaptureRideBackend/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error in loading the ENV")
	}

	if err := config.ConnectDB(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := config.EnsureIndexes(ctx); err != nil {
		log.Println("Error creating indexes:", err)
	}
	cancel()

	uploads, err := services.NewCloudinaryUploader()
	if err != nil {
		log.Fatal("Failed to init cloudinary:", err)
	}
	mailer := services.NewEmailService()
	rec := services.NewReconciler(uploads, services.NewRideStore())

	r := buildRouter(rec, uploads, mailer)

	jobs.StartDailyScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Println("Server listening on port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Forced shutdown:", err)
	}
	if err := config.DisconnectDB(shutdownCtx); err != nil {
		log.Println("Error disconnecting database:", err)
	}
}

func buildRouter(rec *services.Reconciler, uploads services.Uploader, mailer services.Mailer) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	routes.Routes(r, rec, uploads, mailer)
	return r
}
