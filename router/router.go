package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yeremiapane/restaurant-booking/controllers"
	"github.com/yeremiapane/restaurant-booking/middlewares"
	"github.com/yeremiapane/restaurant-booking/utils"
)

type Options struct {
	Bookings       *controllers.BookingController
	Live           *controllers.LiveController
	AllowedOrigins []string
	RateLimiter    *middlewares.RateLimiter
	RequestTimeout time.Duration
	TrustedProxies []string
}

func SetupRouter(opts Options) *gin.Engine {
	r := gin.New()

	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		utils.ErrorLogger.Printf("Invalid trusted proxies %v: %v", opts.TrustedProxies, err)
	}

	// Apply global middlewares
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.Metrics())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.AllowedOrigins))

	// ----------------------------------------------------------------
	//                      SERVICE ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", controllers.Ping)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if opts.Live != nil {
		r.GET("/ws/bookings", opts.Live.BookingsFeed)
	}

	// ----------------------------------------------------------------
	//                      BOOKING API
	// ----------------------------------------------------------------
	api := r.Group("/api")
	if opts.RateLimiter != nil {
		api.Use(opts.RateLimiter.RateLimit())
	}
	api.Use(middlewares.Timeout(opts.RequestTimeout))

	bookings := api.Group("/bookings")
	{
		bookings.GET("", opts.Bookings.ListBookings)
		bookings.POST("", opts.Bookings.CreateBooking)
		bookings.GET("/export", middlewares.DocumentLoggerMiddleware("bookings export"), opts.Bookings.ExportBookings)
		bookings.GET("/:id", opts.Bookings.GetBooking)
		bookings.PUT("/:id", opts.Bookings.UpdateBooking)
		bookings.PATCH("/:id/status", opts.Bookings.UpdateBookingStatus)
		bookings.DELETE("/:id", opts.Bookings.DeleteBooking)
		bookings.GET("/:id/pdf", middlewares.DocumentLoggerMiddleware("booking pdf"), opts.Bookings.DownloadBookingPDF)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.RespondMessage(c, http.StatusNotFound, "Not found")
	})

	return r
}
