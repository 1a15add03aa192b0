package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", Validation("", map[string]string{"capacity": "min"}), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"capacity", ErrCapacityExceeded, http.StatusBadRequest, "CAPACITY_EXCEEDED"},
		{"cast", Cast("id", errors.New("bad uuid")), http.StatusBadRequest, "INVALID_ID"},
		{"duplicate", Duplicate("email"), http.StatusConflict, "DUPLICATE_KEY"},
		{"conflict wrapped", fmt.Errorf("create booking: %w", ErrDateConflict), http.StatusConflict, "DATE_CONFLICT"},
		{"not found", ErrRoomNotFound, http.StatusNotFound, "ROOM_NOT_FOUND"},
		{"expired", ErrExpiredToken, http.StatusUnauthorized, "EXPIRED_TOKEN"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"gorm not found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"gorm duplicate", gorm.ErrDuplicatedKey, http.StatusConflict, "DUPLICATE_KEY"},
		{"echo", echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"), http.StatusMethodNotAllowed, "HTTP_405"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_ValidationCarriesFields(t *testing.T) {
	httpErr := MapErrorToHTTP(Validation("validation failed", map[string]string{"checkOutDate": "must be after checkInDate"}))

	resp := httpErr.ToErrorResponse()
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "must be after checkInDate", resp.Errors["checkOutDate"])
}

func TestAppError_IsMatchesCopies(t *testing.T) {
	specific := ErrForbidden.WithMessage("you can only view your own bookings")

	assert.True(t, errors.Is(specific, ErrForbidden))
	assert.False(t, errors.Is(specific, ErrUnauthenticated))
	assert.True(t, errors.Is(fmt.Errorf("wrap: %w", ErrEmailTaken), Duplicate("email")))
}

func TestMapErrorToHTTP_UnclassifiedIsFlagged(t *testing.T) {
	assert.False(t, MapErrorToHTTP(errors.New("db down")).Classified)
	assert.True(t, MapErrorToHTTP(ErrRoomNotFound).Classified)
}
