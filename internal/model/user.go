package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is the optional postal address of a user profile.
type Address struct {
	Street  string `json:"street,omitempty" gorm:"size:255"`
	City    string `json:"city,omitempty" gorm:"size:128"`
	State   string `json:"state,omitempty" gorm:"size:128"`
	Country string `json:"country,omitempty" gorm:"size:128"`
	ZipCode string `json:"zipCode,omitempty" gorm:"size:32"`
}

// Profile holds personal details of a user.
type Profile struct {
	FirstName string  `json:"firstName" gorm:"size:128;not null" validate:"required,max=128"`
	LastName  string  `json:"lastName" gorm:"size:128;not null" validate:"required,max=128"`
	Phone     string  `json:"phone" gorm:"size:32;not null" validate:"required,max=32"`
	Address   Address `json:"address" gorm:"embedded;embeddedPrefix:address_"`
}

// User is a registered identity: a guest, a staff member or an administrator.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null" validate:"required,email,max=255"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'guest';index" validate:"required,role"`
	Profile      Profile   `json:"profile" gorm:"embedded;embeddedPrefix:profile_"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// NormalizeEmail lower-cases and trims an email so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Normalize trims user input in place.
func (u *User) Normalize() {
	u.Email = NormalizeEmail(u.Email)
	u.Profile.FirstName = strings.TrimSpace(u.Profile.FirstName)
	u.Profile.LastName = strings.TrimSpace(u.Profile.LastName)
	u.Profile.Phone = strings.TrimSpace(u.Profile.Phone)
	if u.Role == "" {
		u.Role = RoleGuest
	}
}

// GuestSummary is the subset of a user shown next to a booking.
type GuestSummary struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	Profile Profile   `json:"profile"`
}

// Summary projects u for display alongside bookings.
func (u *User) Summary() *GuestSummary {
	return &GuestSummary{ID: u.ID, Email: u.Email, Profile: u.Profile}
}
