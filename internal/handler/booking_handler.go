package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"hotelhub/internal/auth"
	"hotelhub/internal/errors"
	"hotelhub/internal/model"
	"hotelhub/internal/service"
)

// BookingHandler handles reservation endpoints.
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// BookingRequest represents a reservation request.
type BookingRequest struct {
	RoomID          string `json:"roomId" validate:"required"`
	CheckInDate     Date   `json:"checkInDate" swaggertype:"string" example:"2025-03-01"`
	CheckOutDate    Date   `json:"checkOutDate" swaggertype:"string" example:"2025-03-03"`
	NumberOfGuests  int    `json:"numberOfGuests" example:"2"`
	SpecialRequests string `json:"specialRequests"`
}

// BookingPatchRequest represents a partial booking update. Only staff may
// change status and paymentStatus.
type BookingPatchRequest struct {
	CheckInDate     *Date                `json:"checkInDate" swaggertype:"string"`
	CheckOutDate    *Date                `json:"checkOutDate" swaggertype:"string"`
	NumberOfGuests  *int                 `json:"numberOfGuests"`
	SpecialRequests *string              `json:"specialRequests"`
	Status          *model.BookingStatus `json:"status"`
	PaymentStatus   *model.PaymentStatus `json:"paymentStatus"`
}

// Create godoc
// @Summary Book a room
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BookingRequest true "Reservation"
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	requester, err := requester(c)
	if err != nil {
		return err
	}

	var req BookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return errors.Cast("roomId", err)
	}

	booking, err := h.bookingService.Create(c.Request().Context(), requester, service.CreateBookingInput{
		RoomID:          roomID,
		CheckInDate:     req.CheckInDate.Time,
		CheckOutDate:    req.CheckOutDate.Time,
		NumberOfGuests:  req.NumberOfGuests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Booking created successfully", echo.Map{"booking": booking})
}

// List godoc
// @Summary List bookings
// @Description Guests see their own bookings, staff and admins see all.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} errors.ErrorResponse
// @Router /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	requester, err := requester(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookingService.List(c.Request().Context(), requester)
	if err != nil {
		return err
	}
	return respondList(c, "bookings", bookings)
}

// Get godoc
// @Summary Get a booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	requester, id, err := requesterAndID(c)
	if err != nil {
		return err
	}

	booking, err := h.bookingService.Get(c.Request().Context(), requester, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", echo.Map{"booking": booking})
}

// Update godoc
// @Summary Update a booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body BookingPatchRequest true "Fields to change"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /bookings/{id} [put]
func (h *BookingHandler) Update(c echo.Context) error {
	requester, id, err := requesterAndID(c)
	if err != nil {
		return err
	}

	var req BookingPatchRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	booking, err := h.bookingService.Update(c.Request().Context(), requester, id, model.BookingPatch{
		CheckInDate:     req.CheckInDate.ptr(),
		CheckOutDate:    req.CheckOutDate.ptr(),
		NumberOfGuests:  req.NumberOfGuests,
		SpecialRequests: req.SpecialRequests,
		Status:          req.Status,
		PaymentStatus:   req.PaymentStatus,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Booking updated successfully", echo.Map{"booking": booking})
}

// Cancel godoc
// @Summary Cancel a booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} Response
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Cancel(c echo.Context) error {
	requester, id, err := requesterAndID(c)
	if err != nil {
		return err
	}

	booking, err := h.bookingService.Cancel(c.Request().Context(), requester, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Booking cancelled successfully", echo.Map{"booking": booking})
}

// CheckIn godoc
// @Summary Check a guest in
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings/{id}/check-in [post]
func (h *BookingHandler) CheckIn(c echo.Context) error {
	requester, id, err := requesterAndID(c)
	if err != nil {
		return err
	}

	booking, err := h.bookingService.CheckIn(c.Request().Context(), requester, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Guest checked in successfully", echo.Map{"booking": booking})
}

// CheckOut godoc
// @Summary Check a guest out
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings/{id}/check-out [post]
func (h *BookingHandler) CheckOut(c echo.Context) error {
	requester, id, err := requesterAndID(c)
	if err != nil {
		return err
	}

	booking, err := h.bookingService.CheckOut(c.Request().Context(), requester, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Guest checked out successfully", echo.Map{"booking": booking})
}

func requester(c echo.Context) (*model.User, error) {
	user, ok := auth.Identity(c)
	if !ok {
		return nil, errors.ErrUnauthenticated
	}
	return user, nil
}

func requesterAndID(c echo.Context) (*model.User, uuid.UUID, error) {
	user, err := requester(c)
	if err != nil {
		return nil, uuid.Nil, err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return nil, uuid.Nil, err
	}
	return user, id, nil
}
