package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelhub/internal/model"
)

// BookingRepository defines booking persistence operations.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	Save(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	// List returns bookings newest first. A nil guestID lists every booking.
	List(ctx context.Context, guestID *uuid.UUID) ([]model.Booking, error)
	// FindConflicting returns an active booking on roomID overlapping [checkIn, checkOut),
	// or nil when the range is free. excludeID skips one booking, typically the one being edited.
	FindConflicting(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID uuid.UUID) (*model.Booking, error)
	// ConflictingRoomIDs returns the rooms holding an active booking overlapping [checkIn, checkOut).
	ConflictingRoomIDs(ctx context.Context, checkIn, checkOut time.Time) ([]uuid.UUID, error)
	// LockRoom loads a room and holds a row lock on it until the surrounding transaction ends.
	LockRoom(ctx context.Context, roomID uuid.UUID) (*model.Room, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo BookingRepository) error) error
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create creates a new booking.
func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return storeErr(r.db.WithContext(ctx).Create(booking).Error)
}

// Save writes every field of booking, running the date range hook.
func (r *bookingRepository) Save(ctx context.Context, booking *model.Booking) error {
	return storeErr(r.db.WithContext(ctx).Save(booking).Error)
}

// FindByID finds a booking by ID.
func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error; err != nil {
		return nil, storeErr(err)
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, guestID *uuid.UUID) ([]model.Booking, error) {
	q := r.db.WithContext(ctx).Model(&model.Booking{})
	if guestID != nil {
		q = q.Where("guest_id = ?", *guestID)
	}

	bookings := []model.Booking{}
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, storeErr(err)
	}
	return bookings, nil
}

func (r *bookingRepository) FindConflicting(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID uuid.UUID) (*model.Booking, error) {
	q := r.overlapping(ctx, checkIn, checkOut).Where("room_id = ?", roomID)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}

	var booking model.Booking
	if err := q.First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	return &booking, nil
}

func (r *bookingRepository) ConflictingRoomIDs(ctx context.Context, checkIn, checkOut time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.overlapping(ctx, checkIn, checkOut).
		Distinct("room_id").
		Pluck("room_id", &ids).Error; err != nil {
		return nil, storeErr(err)
	}
	return ids, nil
}

// overlapping scopes a query to active bookings whose half-open range intersects
// [checkIn, checkOut). Adjacent ranges do not intersect.
func (r *bookingRepository) overlapping(ctx context.Context, checkIn, checkOut time.Time) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("status IN ?", model.ActiveBookingStatuses).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)
}

func (r *bookingRepository) LockRoom(ctx context.Context, roomID uuid.UUID) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", roomID).
		First(&room).Error; err != nil {
		return nil, storeErr(err)
	}
	return &room, nil
}

// WithTransaction executes a function within a database transaction.
func (r *bookingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo BookingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &bookingRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
