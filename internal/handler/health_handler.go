package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Router /health [get]
func Health(c echo.Context) error {
	return respond(c, http.StatusOK, "Hotel Management API is running", echo.Map{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
