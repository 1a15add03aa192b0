package model

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelhub/internal/errors"
)

func day(d int) time.Time {
	return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int64
	}{
		{"two whole nights", day(10), day(12), 2},
		{"partial day rounds up", day(10), day(11).Add(2 * time.Hour), 2},
		{"one hour is one night", day(10), day(10).Add(time.Hour), 1},
		{"same instant", day(10), day(10), 0},
		{"inverted", day(12), day(10), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestQuotePrice(t *testing.T) {
	price := decimal.RequireFromString("100")

	assert.True(t, QuotePrice(price, day(1), day(3)).Equal(decimal.NewFromInt(200)))
	assert.True(t, QuotePrice(decimal.RequireFromString("89.99"), day(1), day(4)).Equal(decimal.RequireFromString("269.97")))
}

func TestOverlaps(t *testing.T) {
	existingIn, existingOut := day(10), day(15)

	tests := []struct {
		name string
		in   time.Time
		out  time.Time
		want bool
	}{
		{"fully contained", day(12), day(14), true},
		{"covers existing", day(8), day(20), true},
		{"straddles start", day(8), day(11), true},
		{"straddles end", day(14), day(18), true},
		{"identical", day(10), day(15), true},
		{"adjacent after", day(15), day(18), false},
		{"adjacent before", day(5), day(10), false},
		{"disjoint", day(20), day(22), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(existingIn, existingOut, tt.in, tt.out))
		})
	}
}

func TestBooking_Transitions(t *testing.T) {
	b := &Booking{Status: BookingStatusConfirmed}

	require.NoError(t, b.CheckIn())
	assert.Equal(t, BookingStatusCheckedIn, b.Status)
	assert.True(t, b.IsActive())

	require.NoError(t, b.CheckOut())
	assert.Equal(t, BookingStatusCheckedOut, b.Status)
	assert.False(t, b.IsActive())

	err := b.CheckIn()
	assert.True(t, stderrors.Is(err, errors.ErrInvalidTransition))
	assert.Equal(t, BookingStatusCheckedOut, b.Status)
}

func TestBooking_CheckOutRequiresCheckedIn(t *testing.T) {
	for _, status := range []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCheckedOut} {
		b := &Booking{Status: status}
		err := b.CheckOut()
		assert.Error(t, err, status)
		assert.Equal(t, status, b.Status)
	}
}

func TestBooking_CancelFromAnyStatus(t *testing.T) {
	for _, status := range []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn, BookingStatusCheckedOut} {
		b := &Booking{Status: status}
		b.Cancel()
		assert.Equal(t, BookingStatusCancelled, b.Status)
	}
}

func TestBooking_BeforeSaveRejectsInvertedRange(t *testing.T) {
	b := &Booking{CheckInDate: day(10), CheckOutDate: day(10)}
	assert.Error(t, b.BeforeSave(nil))

	b.CheckOutDate = day(11)
	assert.NoError(t, b.BeforeSave(nil))
}

func TestBookingPatch_Apply(t *testing.T) {
	guests := 3
	status := BookingStatusCheckedIn
	b := &Booking{CheckInDate: day(1), CheckOutDate: day(2), NumberOfGuests: 1, Status: BookingStatusConfirmed}

	patch := BookingPatch{NumberOfGuests: &guests, Status: &status}
	assert.False(t, patch.Empty())
	assert.True(t, patch.ChangesStay())

	patch.Apply(b)
	assert.Equal(t, 3, b.NumberOfGuests)
	assert.Equal(t, BookingStatusCheckedIn, b.Status)
	assert.Equal(t, day(1), b.CheckInDate)
	assert.True(t, BookingPatch{}.Empty())
}

func TestBooking_OwnedBy(t *testing.T) {
	owner := uuid.New()
	b := &Booking{GuestID: owner}

	assert.True(t, b.OwnedBy(owner))
	assert.False(t, b.OwnedBy(uuid.New()))
}
