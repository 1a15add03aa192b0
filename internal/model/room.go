package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoomType represents the category of a room.
type RoomType string

const (
	RoomTypeSingle       RoomType = "single"
	RoomTypeDouble       RoomType = "double"
	RoomTypeSuite        RoomType = "suite"
	RoomTypeDeluxe       RoomType = "deluxe"
	RoomTypePresidential RoomType = "presidential"
)

// RoomStatus represents the operational state of a room.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

const (
	MinRoomCapacity      = 1
	MaxRoomCapacity      = 10
	MaxDescriptionLength = 1000
)

// Room is a unit of hotel inventory.
type Room struct {
	ID            uuid.UUID                   `json:"id" gorm:"type:char(36);primaryKey"`
	RoomNumber    string                      `json:"roomNumber" gorm:"uniqueIndex;size:32;not null" validate:"required,max=32"`
	Type          RoomType                    `json:"type" gorm:"type:varchar(20);not null;default:'single';index:idx_rooms_type_status,priority:1" validate:"required,oneof=single double suite deluxe presidential"`
	Capacity      int                         `json:"capacity" gorm:"not null" validate:"min=1,max=10"`
	PricePerNight decimal.Decimal             `json:"pricePerNight" gorm:"type:decimal(12,2);not null;index"`
	Amenities     datatypes.JSONSlice[string] `json:"amenities"`
	Photos        datatypes.JSONSlice[string] `json:"photos"`
	Description   string                      `json:"description" gorm:"type:text;not null" validate:"required,max=1000"`
	Status        RoomStatus                  `json:"status" gorm:"type:varchar(20);not null;default:'available';index:idx_rooms_type_status,priority:2" validate:"required,oneof=available occupied maintenance"`
	CreatedAt     time.Time                   `json:"createdAt"`
	UpdatedAt     time.Time                   `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Normalize applies defaults and trims input in place.
func (r *Room) Normalize() {
	r.RoomNumber = strings.TrimSpace(r.RoomNumber)
	if r.Type == "" {
		r.Type = RoomTypeSingle
	}
	if r.Status == "" {
		r.Status = RoomStatusAvailable
	}
	if r.Amenities == nil {
		r.Amenities = datatypes.JSONSlice[string]{}
	}
	if r.Photos == nil {
		r.Photos = datatypes.JSONSlice[string]{}
	}
}

// RoomSummary is the subset of a room shown next to a booking.
type RoomSummary struct {
	ID            uuid.UUID       `json:"id"`
	RoomNumber    string          `json:"roomNumber"`
	Type          RoomType        `json:"type"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
}

// Summary projects r for display alongside bookings.
func (r *Room) Summary() *RoomSummary {
	return &RoomSummary{ID: r.ID, RoomNumber: r.RoomNumber, Type: r.Type, PricePerNight: r.PricePerNight}
}

// RoomFilter narrows room listings. Zero values mean "any".
type RoomFilter struct {
	Type        RoomType
	Status      RoomStatus
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	MinCapacity int
}

// RoomPatch carries the fields an administrator may change on a room.
// Nil fields are left untouched.
type RoomPatch struct {
	RoomNumber    *string
	Type          *RoomType
	Capacity      *int
	PricePerNight *decimal.Decimal
	Amenities     *[]string
	Photos        *[]string
	Description   *string
	Status        *RoomStatus
}

// Apply writes the non-nil patch fields onto r.
func (p RoomPatch) Apply(r *Room) {
	if p.RoomNumber != nil {
		r.RoomNumber = *p.RoomNumber
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Capacity != nil {
		r.Capacity = *p.Capacity
	}
	if p.PricePerNight != nil {
		r.PricePerNight = *p.PricePerNight
	}
	if p.Amenities != nil {
		r.Amenities = datatypes.JSONSlice[string](*p.Amenities)
	}
	if p.Photos != nil {
		r.Photos = datatypes.JSONSlice[string](*p.Photos)
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
}
