package model

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"hotelhub/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return Role(fl.Field().String()).Valid()
	})
	return v
}

// Validator exposes the shared validator so transport layers apply the same rules.
func Validator() *validator.Validate {
	return validate
}

// ValidateUser checks a user record before it is written.
func ValidateUser(u *User) error {
	return check(u, nil)
}

// ValidateRoom checks a room record before it is written.
func ValidateRoom(r *Room) error {
	fields := map[string]string{}
	if r.PricePerNight.IsNegative() {
		fields["pricePerNight"] = "price cannot be negative"
	}
	return check(r, fields)
}

// ValidateBooking checks a booking record before it is written.
func ValidateBooking(b *Booking) error {
	fields := map[string]string{}
	if b.CheckInDate.IsZero() {
		fields["checkInDate"] = "check-in date is required"
	}
	if b.CheckOutDate.IsZero() {
		fields["checkOutDate"] = "check-out date is required"
	} else if !b.CheckOutDate.After(b.CheckInDate) {
		fields["checkOutDate"] = "check-out date must be after check-in date"
	}
	if b.TotalPrice.IsNegative() {
		fields["totalPrice"] = "price cannot be negative"
	}
	return check(b, fields)
}

// ValidateStruct runs tag validation over an arbitrary request struct.
func ValidateStruct(s interface{}) error {
	return check(s, nil)
}

func check(s interface{}, fields map[string]string) error {
	if fields == nil {
		fields = map[string]string{}
	}
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !stderrors.As(err, &verrs) {
			return fmt.Errorf("validate: %w", err)
		}
		for _, fe := range verrs {
			key := fieldPath(fe)
			if _, exists := fields[key]; !exists {
				fields[key] = describe(fe)
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return errors.Validation("validation failed", fields)
}

// fieldPath drops the top-level struct name from the namespace: "Room.profile.firstName" -> "profile.firstName".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "cannot exceed " + fe.Param() + " characters"
		}
		return "cannot exceed " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "role":
		return "must be one of: guest, staff, admin"
	case "uuid", "uuid4":
		return "must be a valid id"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
