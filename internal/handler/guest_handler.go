package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hotelhub/internal/model"
	"hotelhub/internal/service"
)

// GuestHandler handles guest administration endpoints.
type GuestHandler struct {
	guestService service.GuestService
}

// NewGuestHandler creates a new guest handler.
func NewGuestHandler(guestService service.GuestService) *GuestHandler {
	return &GuestHandler{guestService: guestService}
}

// ProfilePatch carries optional profile fields.
type ProfilePatch struct {
	FirstName *string        `json:"firstName"`
	LastName  *string        `json:"lastName"`
	Phone     *string        `json:"phone"`
	Address   *model.Address `json:"address"`
}

// GuestPatchRequest represents a partial guest update. Only admins may change role.
type GuestPatchRequest struct {
	Email   *string      `json:"email"`
	Profile ProfilePatch `json:"profile"`
	Role    *model.Role  `json:"role"`
}

// List godoc
// @Summary List guests
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /guests [get]
func (h *GuestHandler) List(c echo.Context) error {
	guests, err := h.guestService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respondList(c, "guests", guests)
}

// Get godoc
// @Summary Get a guest
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /guests/{id} [get]
func (h *GuestHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	guest, err := h.guestService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", echo.Map{"guest": guest})
}

// Update godoc
// @Summary Update a guest
// @Tags guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body GuestPatchRequest true "Fields to change"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /guests/{id} [put]
func (h *GuestHandler) Update(c echo.Context) error {
	requester, id, err := requesterAndID(c)
	if err != nil {
		return err
	}

	var req GuestPatchRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	guest, err := h.guestService.Update(c.Request().Context(), requester, id, service.GuestUpdate{
		Email:     req.Email,
		FirstName: req.Profile.FirstName,
		LastName:  req.Profile.LastName,
		Phone:     req.Profile.Phone,
		Address:   req.Profile.Address,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Guest updated successfully", echo.Map{"guest": guest})
}

// Bookings godoc
// @Summary List a guest's bookings
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} Response
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /guests/{id}/bookings [get]
func (h *GuestHandler) Bookings(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	bookings, err := h.guestService.Bookings(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respondList(c, "bookings", bookings)
}
