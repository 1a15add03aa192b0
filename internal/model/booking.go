package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hotelhub/internal/errors"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked-in"
	BookingStatusCheckedOut BookingStatus = "checked-out"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// ActiveBookingStatuses are the statuses considered when detecting date conflicts.
var ActiveBookingStatuses = []BookingStatus{BookingStatusConfirmed, BookingStatusCheckedIn}

// PaymentStatus represents the settlement state of a booking.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

const MaxSpecialRequestsLength = 500

// Booking reserves one room for one guest over the half-open range [CheckInDate, CheckOutDate).
type Booking struct {
	ID              uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	GuestID         uuid.UUID       `json:"guestId" gorm:"type:char(36);not null;index:idx_bookings_guest_created,priority:1"`
	RoomID          uuid.UUID       `json:"roomId" gorm:"type:char(36);not null;index:idx_bookings_room_dates,priority:1"`
	CheckInDate     time.Time       `json:"checkInDate" gorm:"not null;index:idx_bookings_room_dates,priority:2"`
	CheckOutDate    time.Time       `json:"checkOutDate" gorm:"not null;index:idx_bookings_room_dates,priority:3"`
	NumberOfGuests  int             `json:"numberOfGuests" gorm:"not null" validate:"min=1"`
	TotalPrice      decimal.Decimal `json:"totalPrice" gorm:"type:decimal(12,2);not null"`
	Status          BookingStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending';index" validate:"required,oneof=pending confirmed checked-in checked-out cancelled"`
	SpecialRequests string          `json:"specialRequests,omitempty" gorm:"size:500" validate:"max=500"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus" gorm:"type:varchar(20);not null;default:'pending'" validate:"required,oneof=pending paid refunded"`
	CreatedAt       time.Time       `json:"createdAt" gorm:"index:idx_bookings_guest_created,priority:2"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BeforeSave refuses to persist a booking whose range is empty or inverted.
func (b *Booking) BeforeSave(tx *gorm.DB) error {
	if !b.CheckOutDate.After(b.CheckInDate) {
		return errors.Validation("", map[string]string{"checkOutDate": "check-out date must be after check-in date"})
	}
	return nil
}

// IsActive reports whether the booking blocks its room for its date range.
func (b *Booking) IsActive() bool {
	for _, s := range ActiveBookingStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// OwnedBy reports whether userID is the guest the booking belongs to.
func (b *Booking) OwnedBy(userID uuid.UUID) bool {
	return b.GuestID == userID
}

// CheckIn moves a confirmed booking to checked-in.
func (b *Booking) CheckIn() error {
	if b.Status != BookingStatusConfirmed {
		return errors.ErrInvalidTransition.WithMessage("only confirmed bookings can be checked in")
	}
	b.Status = BookingStatusCheckedIn
	return nil
}

// CheckOut moves a checked-in booking to checked-out.
func (b *Booking) CheckOut() error {
	if b.Status != BookingStatusCheckedIn {
		return errors.ErrInvalidTransition.WithMessage("only checked-in bookings can be checked out")
	}
	b.Status = BookingStatusCheckedOut
	return nil
}

// Cancel marks the booking cancelled regardless of its current status.
func (b *Booking) Cancel() {
	b.Status = BookingStatusCancelled
}

// Nights returns the number of nights between checkIn and checkOut, rounding
// partial days up.
func Nights(checkIn, checkOut time.Time) int64 {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	const day = 24 * time.Hour
	n := int64(d / day)
	if d%day != 0 {
		n++
	}
	return n
}

// QuotePrice returns nights * pricePerNight for the range.
func QuotePrice(pricePerNight decimal.Decimal, checkIn, checkOut time.Time) decimal.Decimal {
	return pricePerNight.Mul(decimal.NewFromInt(Nights(checkIn, checkOut)))
}

// Overlaps reports whether the half-open ranges [aIn, aOut) and [bIn, bOut) intersect.
// Adjacent ranges, where one ends exactly when the other starts, do not overlap.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// BookingDetails is a booking joined with the room and guest it references.
type BookingDetails struct {
	Booking
	Room  *RoomSummary  `json:"room,omitempty"`
	Guest *GuestSummary `json:"guest,omitempty"`
}

// BookingPatch carries the fields a caller may change on an existing booking.
// Nil fields are left untouched.
type BookingPatch struct {
	CheckInDate     *time.Time
	CheckOutDate    *time.Time
	NumberOfGuests  *int
	SpecialRequests *string
	Status          *BookingStatus
	PaymentStatus   *PaymentStatus
}

// Empty reports whether the patch changes nothing.
func (p BookingPatch) Empty() bool {
	return p.CheckInDate == nil && p.CheckOutDate == nil && p.NumberOfGuests == nil &&
		p.SpecialRequests == nil && p.Status == nil && p.PaymentStatus == nil
}

// ChangesStay reports whether the patch touches the dates or the party size.
func (p BookingPatch) ChangesStay() bool {
	return p.CheckInDate != nil || p.CheckOutDate != nil || p.NumberOfGuests != nil
}

// Apply writes the non-nil patch fields onto b.
func (p BookingPatch) Apply(b *Booking) {
	if p.CheckInDate != nil {
		b.CheckInDate = *p.CheckInDate
	}
	if p.CheckOutDate != nil {
		b.CheckOutDate = *p.CheckOutDate
	}
	if p.NumberOfGuests != nil {
		b.NumberOfGuests = *p.NumberOfGuests
	}
	if p.SpecialRequests != nil {
		b.SpecialRequests = *p.SpecialRequests
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.PaymentStatus != nil {
		b.PaymentStatus = *p.PaymentStatus
	}
}
