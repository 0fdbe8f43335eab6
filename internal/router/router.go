// Package router wires handlers, middleware and route groups onto the Echo
// instance.  Public browse endpoints are unauthenticated (and cacheable),
// auth endpoints are rate limited, everything else requires a JWT and the
// appropriate role.
package router

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"hotelbooking/internal/config"
	"hotelbooking/internal/handler"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/model"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Cities   *handler.CityHandler
	Hotels   *handler.HotelHandler
	Rooms    *handler.RoomHandler
	Reviews  *handler.ReviewHandler
	Bookings *handler.BookingHandler
	Payments *handler.PaymentHandler
}

// Register mounts every route.  rdb may be nil, in which case caching and
// rate limiting are pass-through.
func Register(e *echo.Echo, h Handlers, db *sql.DB, rdb *redis.Client, jwtSecret string) {
	e.GET("/healthz", handler.Health(db))

	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)
	limit := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)

	// Unauthenticated auth endpoints, rate limited per client.
	auth := e.Group("/v1/auth", limit)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	// Public browse endpoints; read-only and cacheable.
	e.GET("/v1/cities", h.Cities.List, cache)
	e.GET("/v1/cities/popular", h.Cities.Popular, cache)
	e.GET("/v1/cities/:id", h.Cities.Get, cache)
	e.GET("/v1/hotels/search", h.Hotels.Search, cache)
	e.GET("/v1/hotels/featured-deals", h.Hotels.FeaturedDeals, cache)
	e.GET("/v1/hotels/:id", h.Hotels.Get, cache)
	e.GET("/v1/hotels/:hotelId/rooms", h.Rooms.List, cache)
	e.GET("/v1/hotels/:hotelId/rooms/:roomId", h.Rooms.Get, cache)
	e.GET("/v1/rooms/search", h.Rooms.Search, cache)

	// Everything below requires a valid access token.
	authed := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	authed.GET("/me", h.Auth.Me)
	authed.GET("/hotels/recent", h.Hotels.Recent)

	// Booking and payment reads enforce admin-or-owner inside the handler.
	authed.GET("/bookings/:id", h.Bookings.Get)
	authed.DELETE("/bookings/:id", h.Bookings.Delete)
	authed.GET("/bookings/:id/document", h.Bookings.Document)
	authed.GET("/payments/:id", h.Payments.Get)

	customer := authed.Group("", middleware.RequireRole(model.RoleCustomer, model.RoleAdmin))
	customer.POST("/bookings", h.Bookings.Create)
	customer.POST("/payments", h.Payments.Create)
	customer.POST("/hotels/:id/reviews", h.Reviews.Create)
	customer.DELETE("/hotels/:id/reviews/:reviewId", h.Reviews.Delete)

	admin := authed.Group("", middleware.RequireRole(model.RoleAdmin))
	admin.POST("/cities", h.Cities.Create)
	admin.PUT("/cities/:id", h.Cities.Update)
	admin.DELETE("/cities/:id", h.Cities.Delete)
	admin.POST("/hotels", h.Hotels.Create)
	admin.PUT("/hotels/:id", h.Hotels.Update)
	admin.DELETE("/hotels/:id", h.Hotels.Delete)
	admin.POST("/hotels/:hotelId/rooms", h.Rooms.Create)
	admin.PUT("/hotels/:hotelId/rooms/:roomId", h.Rooms.Update)
	admin.DELETE("/hotels/:hotelId/rooms/:roomId", h.Rooms.Delete)
	admin.PATCH("/payments/:id/status", h.Payments.UpdateStatus)
}
