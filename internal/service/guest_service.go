package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hotelhub/internal/errors"
	"hotelhub/internal/model"
	"hotelhub/internal/repository"
)

// GuestUpdate carries the profile fields staff may change on a user.
// Nil fields are left untouched. Only administrators may change Role.
type GuestUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	Phone     *string
	Address   *model.Address
	Role      *model.Role
}

// GuestService handles guest administration.
type GuestService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, requester *model.User, id uuid.UUID, update GuestUpdate) (*model.User, error)
	Bookings(ctx context.Context, id uuid.UUID) ([]model.BookingDetails, error)
}

type guestService struct {
	userRepo       repository.UserRepository
	bookingService BookingService
}

// NewGuestService creates a new guest service.
func NewGuestService(userRepo repository.UserRepository, bookingService BookingService) GuestService {
	return &guestService{
		userRepo:       userRepo,
		bookingService: bookingService,
	}
}

func (s *guestService) List(ctx context.Context) ([]model.User, error) {
	guests, err := s.userRepo.ListByRole(ctx, model.RoleGuest)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return guests, nil
}

func (s *guestService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrGuestNotFound
		}
		return nil, fmt.Errorf("find guest: %w", err)
	}
	return user, nil
}

func (s *guestService) Update(ctx context.Context, requester *model.User, id uuid.UUID, update GuestUpdate) (*model.User, error) {
	if update.Role != nil && (requester == nil || requester.Role != model.RoleAdmin) {
		return nil, errors.Forbidden("only administrators can change roles")
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previousEmail := user.Email

	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.FirstName != nil {
		user.Profile.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.Profile.LastName = *update.LastName
	}
	if update.Phone != nil {
		user.Profile.Phone = *update.Phone
	}
	if update.Address != nil {
		user.Profile.Address = *update.Address
	}
	if update.Role != nil {
		user.Role = *update.Role
	}

	user.Normalize()
	if err := model.ValidateUser(user); err != nil {
		return nil, err
	}

	if user.Email != previousEmail {
		existing, err := s.userRepo.FindByEmail(ctx, user.Email)
		if err == nil && existing != nil && existing.ID != user.ID {
			return nil, errors.ErrEmailTaken
		}
		if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrEmailTaken
		}
		return nil, fmt.Errorf("update guest: %w", err)
	}
	return user, nil
}

// Bookings lists a guest's bookings newest first.
func (s *guestService) Bookings(ctx context.Context, id uuid.UUID) ([]model.BookingDetails, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.bookingService.ListForGuest(ctx, id)
}
