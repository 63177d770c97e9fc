package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"stayprice/internal/infra/config"
	"stayprice/internal/infra/obs"
)

type RoomHTTP interface {
	Create(c *gin.Context)
	UpdateBasePrice(c *gin.Context)
	Delete(c *gin.Context)
}

type PricingHTTP interface {
	Update(c *gin.Context)
	Validate(c *gin.Context)
	Prices(c *gin.Context)
}

type AvailabilityHTTP interface {
	Remaining(c *gin.Context)
}

type BookingHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
}

type Handlers struct {
	Room         RoomHTTP
	Pricing      PricingHTTP
	Availability AvailabilityHTTP
	Booking      BookingHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Room != nil {
		api.POST("/rooms", h.Room.Create)
		api.PUT("/rooms/:id/base-price", h.Room.UpdateBasePrice)
		api.DELETE("/rooms/:id", h.Room.Delete)
	}
	if h.Pricing != nil {
		api.POST("/rooms/:id/pricing", h.Pricing.Update)
		api.POST("/rooms/:id/pricing/validate", h.Pricing.Validate)
		api.GET("/rooms/:id/pricing", h.Pricing.Prices)
	}
	if h.Availability != nil {
		api.GET("/rooms/:id/availability", h.Availability.Remaining)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
		api.GET("/bookings/:id", h.Booking.Get)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
