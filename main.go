package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/restaurant-booking/broker"
	"github.com/yeremiapane/restaurant-booking/config"
	"github.com/yeremiapane/restaurant-booking/controllers"
	"github.com/yeremiapane/restaurant-booking/database"
	"github.com/yeremiapane/restaurant-booking/documents"
	"github.com/yeremiapane/restaurant-booking/live"
	"github.com/yeremiapane/restaurant-booking/metrics"
	"github.com/yeremiapane/restaurant-booking/middlewares"
	"github.com/yeremiapane/restaurant-booking/router"
	"github.com/yeremiapane/restaurant-booking/server"
	"github.com/yeremiapane/restaurant-booking/services"
	"github.com/yeremiapane/restaurant-booking/utils"
)

func main() {
	// Load .env di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.InitLogger(utils.WithLevel(cfg.Log.Level), utils.WithFormat(cfg.Log.Format))

	if cfg.Server.Mode == gin.ReleaseMode || cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize DB
	db, err := config.InitDB(cfg.Database)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate database: %v", err)
	}
	if cfg.Database.Seed {
		if err := database.SeedBookings(db, time.Now()); err != nil {
			utils.ErrorLogger.Printf("Error seeding bookings: %v", err)
		}
	}

	// Booking events: websocket hub, metrics dan Kafka (opsional)
	hub := live.NewHub()
	defer hub.Close()
	notifiers := services.Notifiers{hub, metrics.EventCounter{}}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := broker.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := publisher.Close(); err != nil {
				utils.ErrorLogger.Printf("Error closing kafka writer: %v", err)
			}
		}()
		notifiers = append(notifiers, publisher)
		utils.InfoLogger.Printf("Publishing booking events to %s on %v", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	} else {
		utils.InfoLogger.Println("Kafka brokers not configured, booking events stay local")
	}

	bookingService := services.NewBookingService(db, notifiers)

	r := router.SetupRouter(router.Options{
		Bookings:       controllers.NewBookingController(bookingService, documents.NewRenderer(cfg.PDF.FontPath)),
		Live:           controllers.NewLiveController(hub, cfg.CORS.AllowedOrigins),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimiter:    middlewares.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		RequestTimeout: cfg.Server.RequestTimeout,
		TrustedProxies: cfg.Server.TrustedProxies,
	})

	srv := server.New(cfg.Server, r)
	if err := srv.RunUntilSignal(cfg.Server.ShutdownTimeout); err != nil {
		utils.ErrorLogger.Errorf("Server stopped with error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	utils.InfoLogger.Println("Server exited")
}
