package router

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"hotelhub/internal/auth"
	"hotelhub/internal/config"
	"hotelhub/internal/handler"
	"hotelhub/internal/model"
)

// Handlers groups the endpoint handlers mounted by Register.
type Handlers struct {
	Auth    *handler.AuthHandler
	Room    *handler.RoomHandler
	Booking *handler.BookingHandler
	Guest   *handler.GuestHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, gate *auth.Gate, h Handlers) {
	e.HideBanner = true
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(cfg.IsProduction())
	e.Validator = &CustomValidator{}

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/health", handler.Health)
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	authenticated := gate.Authenticate()
	adminOnly := auth.RequireRoles(model.RoleAdmin)
	staffOnly := auth.RequireRoles(model.RoleStaff, model.RoleAdmin)

	// Auth routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/auth/me", h.Auth.Me, authenticated)
	api.POST("/auth/logout", h.Auth.Logout, authenticated)

	// Room routes
	rooms := api.Group("/rooms")
	rooms.GET("", h.Room.List)
	rooms.GET("/search", h.Room.Search)
	rooms.GET("/:id", h.Room.Get)
	rooms.POST("", h.Room.Create, authenticated, adminOnly)
	rooms.PUT("/:id", h.Room.Update, authenticated, adminOnly)
	rooms.DELETE("/:id", h.Room.Delete, authenticated, adminOnly)

	// Booking routes
	bookings := api.Group("/bookings", authenticated)
	bookings.POST("", h.Booking.Create)
	bookings.GET("", h.Booking.List)
	bookings.GET("/:id", h.Booking.Get)
	bookings.PUT("/:id", h.Booking.Update)
	bookings.DELETE("/:id", h.Booking.Cancel)
	bookings.POST("/:id/check-in", h.Booking.CheckIn, staffOnly)
	bookings.POST("/:id/check-out", h.Booking.CheckOut, staffOnly)

	// Guest routes
	guests := api.Group("/guests", authenticated, staffOnly)
	guests.GET("", h.Guest.List)
	guests.GET("/:id", h.Guest.Get)
	guests.PUT("/:id", h.Guest.Update)
	guests.GET("/:id/bookings", h.Guest.Bookings)
}

// CustomValidator wraps the model validator for Echo so request structs
// report field errors in the same shape as entity validation.
type CustomValidator struct{}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return model.ValidateStruct(i)
}
