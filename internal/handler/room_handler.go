package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"hotelhub/internal/errors"
	"hotelhub/internal/model"
	"hotelhub/internal/service"
)

// RoomHandler handles room inventory endpoints.
type RoomHandler struct {
	roomService service.RoomService
}

// NewRoomHandler creates a new room handler.
func NewRoomHandler(roomService service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// RoomRequest represents a room creation request.
type RoomRequest struct {
	RoomNumber    string           `json:"roomNumber" example:"101"`
	Type          model.RoomType   `json:"type" example:"double"`
	Capacity      int              `json:"capacity" example:"2"`
	PricePerNight decimal.Decimal  `json:"pricePerNight" swaggertype:"number" example:"120.00"`
	Amenities     []string         `json:"amenities"`
	Photos        []string         `json:"photos"`
	Description   string           `json:"description"`
	Status        model.RoomStatus `json:"status" example:"available"`
}

// RoomPatchRequest represents a partial room update. Omitted fields are left untouched.
type RoomPatchRequest struct {
	RoomNumber    *string           `json:"roomNumber"`
	Type          *model.RoomType   `json:"type"`
	Capacity      *int              `json:"capacity"`
	PricePerNight *decimal.Decimal  `json:"pricePerNight" swaggertype:"number"`
	Amenities     *[]string         `json:"amenities"`
	Photos        *[]string         `json:"photos"`
	Description   *string           `json:"description"`
	Status        *model.RoomStatus `json:"status"`
}

// List godoc
// @Summary List rooms
// @Tags rooms
// @Produce json
// @Param type query string false "Room type"
// @Param status query string false "Room status"
// @Param minPrice query number false "Minimum price per night"
// @Param maxPrice query number false "Maximum price per night"
// @Param capacity query int false "Minimum capacity"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /rooms [get]
func (h *RoomHandler) List(c echo.Context) error {
	filter := model.RoomFilter{
		Type:   model.RoomType(c.QueryParam("type")),
		Status: model.RoomStatus(c.QueryParam("status")),
	}

	var minPrice, maxPrice priceParam
	err := queryParams(c, roomQueryHints).
		BindUnmarshaler("minPrice", &minPrice).
		BindUnmarshaler("maxPrice", &maxPrice).
		Int("capacity", &filter.MinCapacity).
		BindError()
	if err != nil {
		return err
	}
	filter.MinPrice, filter.MaxPrice = minPrice.value, maxPrice.value

	rooms, err := h.roomService.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respondList(c, "rooms", rooms)
}

// Search godoc
// @Summary Search available rooms
// @Description Dates are applied only when both are given.
// @Tags rooms
// @Produce json
// @Param checkIn query string false "Check-in date (YYYY-MM-DD)"
// @Param checkOut query string false "Check-out date (YYYY-MM-DD)"
// @Param type query string false "Room type"
// @Param capacity query int false "Minimum capacity"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /rooms/search [get]
func (h *RoomHandler) Search(c echo.Context) error {
	query := service.AvailabilityQuery{Type: model.RoomType(c.QueryParam("type"))}

	var checkIn, checkOut Date
	err := queryParams(c, roomQueryHints).
		BindUnmarshaler("checkIn", &checkIn).
		BindUnmarshaler("checkOut", &checkOut).
		Int("capacity", &query.MinCapacity).
		BindError()
	if err != nil {
		return err
	}
	query.CheckIn, query.CheckOut = checkIn.ptr(), checkOut.ptr()

	rooms, err := h.roomService.Search(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return respondList(c, "rooms", rooms)
}

// Get godoc
// @Summary Get a room
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /rooms/{id} [get]
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	room, err := h.roomService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", echo.Map{"room": room})
}

// Create godoc
// @Summary Create a room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RoomRequest true "Room data"
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /rooms [post]
func (h *RoomHandler) Create(c echo.Context) error {
	var req RoomRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	room, err := h.roomService.Create(c.Request().Context(), &model.Room{
		RoomNumber:    req.RoomNumber,
		Type:          req.Type,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		Amenities:     datatypes.JSONSlice[string](req.Amenities),
		Photos:        datatypes.JSONSlice[string](req.Photos),
		Description:   req.Description,
		Status:        req.Status,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Room created successfully", echo.Map{"room": room})
}

// Update godoc
// @Summary Update a room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body RoomPatchRequest true "Fields to change"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /rooms/{id} [put]
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req RoomPatchRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	room, err := h.roomService.Update(c.Request().Context(), id, model.RoomPatch{
		RoomNumber:    req.RoomNumber,
		Type:          req.Type,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		Amenities:     req.Amenities,
		Photos:        req.Photos,
		Description:   req.Description,
		Status:        req.Status,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Room updated successfully", echo.Map{"room": room})
}

// Delete godoc
// @Summary Delete a room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /rooms/{id} [delete]
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.roomService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Status: "success", Message: "Room deleted successfully"})
}

// queryParams binds query parameters with echo's value binder. The first
// failure is reported as a validation error on that parameter.
func queryParams(c echo.Context, hints map[string]string) *echo.ValueBinder {
	b := echo.QueryParamsBinder(c)
	b.ErrorFunc = func(param string, _ []string, _ interface{}, _ error) error {
		hint, ok := hints[param]
		if !ok {
			hint = "is invalid"
		}
		return errors.Validation("", map[string]string{param: hint})
	}
	return b
}

var roomQueryHints = map[string]string{
	"minPrice": "must be a number",
	"maxPrice": "must be a number",
	"capacity": "must be an integer",
	"checkIn":  "must be a date in YYYY-MM-DD or RFC 3339 format",
	"checkOut": "must be a date in YYYY-MM-DD or RFC 3339 format",
}

// priceParam is an optional decimal query parameter.
type priceParam struct {
	value *decimal.Decimal
}

// UnmarshalParam implements echo.BindUnmarshaler.
func (p *priceParam) UnmarshalParam(param string) error {
	d, err := decimal.NewFromString(param)
	if err != nil {
		return err
	}
	p.value = &d
	return nil
}
