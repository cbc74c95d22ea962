package api

import (
	"database/sql"
	stdhttp "net/http"
	"time"

	intconfig "smartcab/internal/config"
	h "smartcab/internal/http/handlers"
	"smartcab/internal/http/middleware"
	"smartcab/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, db *sql.DB) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Log().Warnf("failed to set trusted proxies: %v", err)
	}

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		h.RespondError(c, stdhttp.StatusMethodNotAllowed, "Method not allowed")
	})
	r.NoRoute(func(c *gin.Context) {
		h.RespondError(c, stdhttp.StatusNotFound, "Route not found")
	})

	a := h.New(env, db)

	api := r.Group("/api")
	{
		api.GET("/health", a.Health)
		api.GET("/db-check", a.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", a.Login)
		auth.GET("/users/:id", a.GetUserByID)

		// Bookings
		bookings := api.Group("/bookings")
		bookings.POST("", a.CreateBooking)
		bookings.GET("", a.GetBookings)
		bookings.DELETE("", a.DeleteBooking)
		bookings.GET("/search", a.SearchBookings)
		bookings.POST("/search", a.SearchBookings)
		bookings.PUT("/:booking_id", a.UpdateBooking)
		bookings.POST("/:booking_id", a.UpdateBooking)
		bookings.GET("/:booking_id/confirmation", a.GetBookingConfirmation)

		// Rides (derived views)
		rides := api.Group("/rides")
		rides.GET("/detail", a.GetRideDetail)
		rides.GET("/history", a.GetRideHistory)
	}

	// legacy paths kept for the original clients
	r.POST("/login", a.Login)
	r.POST("/save-booking", a.CreateBooking)

	return r
}
