package model

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelhub/internal/errors"
)

func validRoom() *Room {
	r := &Room{
		RoomNumber:    "101",
		Type:          RoomTypeSingle,
		Capacity:      2,
		PricePerNight: decimal.NewFromInt(100),
		Description:   "Quiet room facing the garden",
	}
	r.Normalize()
	return r
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr), "expected *AppError, got %v", err)
	assert.Equal(t, errors.KindValidation, appErr.Kind)
	return appErr.Fields
}

func TestValidateRoom(t *testing.T) {
	assert.NoError(t, ValidateRoom(validRoom()))

	tests := []struct {
		name   string
		mutate func(*Room)
		field  string
	}{
		{"capacity too small", func(r *Room) { r.Capacity = 0 }, "capacity"},
		{"capacity too large", func(r *Room) { r.Capacity = 11 }, "capacity"},
		{"negative price", func(r *Room) { r.PricePerNight = decimal.NewFromInt(-1) }, "pricePerNight"},
		{"unknown type", func(r *Room) { r.Type = "penthouse" }, "type"},
		{"unknown status", func(r *Room) { r.Status = "closed" }, "status"},
		{"missing number", func(r *Room) { r.RoomNumber = "" }, "roomNumber"},
		{"long description", func(r *Room) { r.Description = strings.Repeat("x", MaxDescriptionLength+1) }, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRoom()
			tt.mutate(r)
			fields := fieldsOf(t, ValidateRoom(r))
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateBooking(t *testing.T) {
	valid := func() *Booking {
		return &Booking{
			CheckInDate:    day(10),
			CheckOutDate:   day(12),
			NumberOfGuests: 1,
			TotalPrice:     decimal.NewFromInt(200),
			Status:         BookingStatusConfirmed,
			PaymentStatus:  PaymentStatusPending,
		}
	}
	assert.NoError(t, ValidateBooking(valid()))

	tests := []struct {
		name   string
		mutate func(*Booking)
		field  string
	}{
		{"same day", func(b *Booking) { b.CheckOutDate = b.CheckInDate }, "checkOutDate"},
		{"inverted", func(b *Booking) { b.CheckOutDate = day(9) }, "checkOutDate"},
		{"no guests", func(b *Booking) { b.NumberOfGuests = 0 }, "numberOfGuests"},
		{"unknown status", func(b *Booking) { b.Status = "archived" }, "status"},
		{"unknown payment", func(b *Booking) { b.PaymentStatus = "void" }, "paymentStatus"},
		{"long requests", func(b *Booking) { b.SpecialRequests = strings.Repeat("x", MaxSpecialRequestsLength+1) }, "specialRequests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid()
			tt.mutate(b)
			assert.Contains(t, fieldsOf(t, ValidateBooking(b)), tt.field)
		})
	}
}

func TestValidateUser(t *testing.T) {
	u := &User{
		Email:   "  Guest@Example.COM ",
		Profile: Profile{FirstName: "Ada", LastName: "Lovelace", Phone: "+44 20 0000"},
	}
	u.Normalize()

	assert.Equal(t, "guest@example.com", u.Email)
	assert.Equal(t, RoleGuest, u.Role)
	assert.NoError(t, ValidateUser(u))

	u.Role = "owner"
	u.Profile.Phone = ""
	fields := fieldsOf(t, ValidateUser(u))
	assert.Contains(t, fields, "role")
	assert.Contains(t, fields, "profile.phone")
}

func TestRole(t *testing.T) {
	for _, r := range Roles {
		parsed, err := ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
	_, err := ParseRole("root")
	assert.Error(t, err)

	assert.True(t, RoleAdmin.IsStaff())
	assert.True(t, RoleStaff.IsStaff())
	assert.False(t, RoleGuest.IsStaff())
	assert.False(t, Role("root").IsStaff())
	assert.True(t, RoleStaff.In(RoleAdmin, RoleStaff))
	assert.False(t, RoleGuest.In(RoleAdmin, RoleStaff))
}
