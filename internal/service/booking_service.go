package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"hotelhub/internal/errors"
	"hotelhub/internal/model"
	"hotelhub/internal/repository"
)

// CreateBookingInput carries a reservation request.
type CreateBookingInput struct {
	RoomID          uuid.UUID
	CheckInDate     time.Time
	CheckOutDate    time.Time
	NumberOfGuests  int
	SpecialRequests string
}

// BookingService handles the booking lifecycle.
type BookingService interface {
	Create(ctx context.Context, requester *model.User, input CreateBookingInput) (*model.BookingDetails, error)
	List(ctx context.Context, requester *model.User) ([]model.BookingDetails, error)
	ListForGuest(ctx context.Context, guestID uuid.UUID) ([]model.BookingDetails, error)
	Get(ctx context.Context, requester *model.User, id uuid.UUID) (*model.BookingDetails, error)
	Update(ctx context.Context, requester *model.User, id uuid.UUID, patch model.BookingPatch) (*model.BookingDetails, error)
	Cancel(ctx context.Context, requester *model.User, id uuid.UUID) (*model.BookingDetails, error)
	CheckIn(ctx context.Context, requester *model.User, id uuid.UUID) (*model.BookingDetails, error)
	CheckOut(ctx context.Context, requester *model.User, id uuid.UUID) (*model.BookingDetails, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	roomRepo    repository.RoomRepository
	userRepo    repository.UserRepository
}

// NewBookingService creates a new booking service.
func NewBookingService(bookingRepo repository.BookingRepository, roomRepo repository.RoomRepository, userRepo repository.UserRepository) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		userRepo:    userRepo,
	}
}

// Create books a room for the requester. The room row stays locked from the
// conflict check until the booking is inserted, so two overlapping requests
// for the same room cannot both succeed.
func (s *bookingService) Create(ctx context.Context, requester *model.User, input CreateBookingInput) (*model.BookingDetails, error) {
	if requester == nil {
		return nil, errors.ErrUnauthenticated
	}

	booking := &model.Booking{
		GuestID:         requester.ID,
		RoomID:          input.RoomID,
		CheckInDate:     input.CheckInDate,
		CheckOutDate:    input.CheckOutDate,
		NumberOfGuests:  input.NumberOfGuests,
		SpecialRequests: input.SpecialRequests,
		Status:          model.BookingStatusConfirmed,
		PaymentStatus:   model.PaymentStatusPending,
	}
	if err := model.ValidateBooking(booking); err != nil {
		return nil, err
	}

	var room *model.Room
	err := s.bookingRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.BookingRepository) error {
		var err error
		room, err = s.reserve(ctx, repo, booking, true)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &model.BookingDetails{
		Booking: *booking,
		Room:    room.Summary(),
		Guest:   requester.Summary(),
	}, nil
}

// reserve locks the booking's room and checks capacity and availability.
// With reprice set the total is recomputed from the room's nightly price.
// It must run inside a transaction.
func (s *bookingService) reserve(ctx context.Context, repo repository.BookingRepository, booking *model.Booking, reprice bool) (*model.Room, error) {
	room, err := repo.LockRoom(ctx, booking.RoomID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("lock room: %w", err)
	}

	if booking.NumberOfGuests > room.Capacity {
		return nil, errors.ErrCapacityExceeded.WithMessage(fmt.Sprintf("room capacity is %d guests", room.Capacity))
	}

	if booking.IsActive() {
		conflict, err := repo.FindConflicting(ctx, room.ID, booking.CheckInDate, booking.CheckOutDate, booking.ID)
		if err != nil {
			return nil, fmt.Errorf("check availability: %w", err)
		}
		if conflict != nil {
			return nil, errors.ErrDateConflict
		}
	}

	if reprice {
		booking.TotalPrice = model.QuotePrice(room.PricePerNight, booking.CheckInDate, booking.CheckOutDate)
	}
	return room, nil
}

// List returns the requester's bookings, or every booking for staff.
func (s *bookingService) List(ctx context.Context, requester *model.User) ([]model.BookingDetails, error) {
	if requester == nil {
		return nil, errors.ErrUnauthenticated
	}

	var scope *uuid.UUID
	switch requester.Role {
	case model.RoleStaff, model.RoleAdmin:
	case model.RoleGuest:
		scope = &requester.ID
	default:
		return nil, errors.ErrForbidden
	}

	bookings, err := s.bookingRepo.List(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return s.details(ctx, bookings)
}

// ListForGuest returns a guest's bookings newest first.
func (s *bookingService) ListForGuest(ctx context.Context, guestID uuid.UUID) ([]model.BookingDetails, error) {
	bookings, err := s.bookingRepo.List(ctx, &guestID)
	if err != nil {
		return nil, fmt.Errorf("list guest bookings: %w", err)
	}
	return s.details(ctx, bookings)
}

// Get returns a booking the requester may see.
func (s *bookingService) Get(ctx context.Context, requester *model.User, id uuid.UUID) (*model.BookingDetails, error) {
	booking, err := s.load(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, booking)
}

// Update applies patch after re-validating the booking. Changing the stay
// re-checks capacity and availability and reprices the booking.
func (s *bookingService) Update(ctx context.Context, requester *model.User, id uuid.UUID, patch model.BookingPatch) (*model.BookingDetails, error) {
	current, err := s.load(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	if (patch.Status != nil || patch.PaymentStatus != nil) && !requester.Role.IsStaff() {
		return nil, errors.Forbidden("only staff can change booking or payment status")
	}
	if patch.Empty() {
		return s.detail(ctx, current)
	}

	updated := *current
	patch.Apply(&updated)
	if err := model.ValidateBooking(&updated); err != nil {
		return nil, err
	}

	reactivated := updated.IsActive() && !current.IsActive()
	if !patch.ChangesStay() && !reactivated {
		if err := s.bookingRepo.Save(ctx, &updated); err != nil {
			return nil, fmt.Errorf("update booking: %w", err)
		}
		return s.detail(ctx, &updated)
	}

	datesChanged := patch.CheckInDate != nil || patch.CheckOutDate != nil
	err = s.bookingRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.BookingRepository) error {
		if _, err := s.reserve(ctx, repo, &updated, datesChanged); err != nil {
			return err
		}
		if err := repo.Save(ctx, &updated); err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, &updated)
}

// Cancel marks a booking cancelled whatever its current status.
func (s *bookingService) Cancel(ctx context.Context, requester *model.User, id uuid.UUID) (*model.BookingDetails, error) {
	booking, err := s.load(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	booking.Cancel()
	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	return s.detail(ctx, booking)
}

// CheckIn moves a confirmed booking to checked-in.
func (s *bookingService) CheckIn(ctx context.Context, requester *model.User, id uuid.UUID) (*model.BookingDetails, error) {
	return s.transition(ctx, requester, id, (*model.Booking).CheckIn)
}

// CheckOut moves a checked-in booking to checked-out.
func (s *bookingService) CheckOut(ctx context.Context, requester *model.User, id uuid.UUID) (*model.BookingDetails, error) {
	return s.transition(ctx, requester, id, (*model.Booking).CheckOut)
}

func (s *bookingService) transition(ctx context.Context, requester *model.User, id uuid.UUID, step func(*model.Booking) error) (*model.BookingDetails, error) {
	if requester == nil {
		return nil, errors.ErrUnauthenticated
	}
	if !requester.Role.IsStaff() {
		return nil, errors.ErrForbidden
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := step(booking); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		return nil, fmt.Errorf("save booking: %w", err)
	}
	return s.detail(ctx, booking)
}

func (s *bookingService) find(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return booking, nil
}

// load fetches a booking and checks the requester may access it.
func (s *bookingService) load(ctx context.Context, requester *model.User, id uuid.UUID) (*model.Booking, error) {
	if requester == nil {
		return nil, errors.ErrUnauthenticated
	}
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeBooking(requester, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func authorizeBooking(requester *model.User, booking *model.Booking) error {
	switch requester.Role {
	case model.RoleStaff, model.RoleAdmin:
		return nil
	case model.RoleGuest:
		if booking.OwnedBy(requester.ID) {
			return nil
		}
		return errors.Forbidden("not authorized to access this booking")
	default:
		return errors.ErrForbidden
	}
}

func (s *bookingService) detail(ctx context.Context, booking *model.Booking) (*model.BookingDetails, error) {
	details, err := s.details(ctx, []model.Booking{*booking})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// details joins bookings with their rooms and guests. Rooms and guests are
// fetched concurrently; a reference that no longer resolves is left nil.
func (s *bookingService) details(ctx context.Context, bookings []model.Booking) ([]model.BookingDetails, error) {
	out := make([]model.BookingDetails, 0, len(bookings))
	if len(bookings) == 0 {
		return out, nil
	}

	roomIDs := make([]uuid.UUID, 0, len(bookings))
	guestIDs := make([]uuid.UUID, 0, len(bookings))
	seenRooms := make(map[uuid.UUID]bool)
	seenGuests := make(map[uuid.UUID]bool)
	for _, b := range bookings {
		if !seenRooms[b.RoomID] {
			seenRooms[b.RoomID] = true
			roomIDs = append(roomIDs, b.RoomID)
		}
		if !seenGuests[b.GuestID] {
			seenGuests[b.GuestID] = true
			guestIDs = append(guestIDs, b.GuestID)
		}
	}

	var (
		rooms  []model.Room
		guests []model.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if rooms, err = s.roomRepo.FindByIDs(gctx, roomIDs); err != nil {
			return fmt.Errorf("load booking rooms: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if guests, err = s.userRepo.FindByIDs(gctx, guestIDs); err != nil {
			return fmt.Errorf("load booking guests: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	roomByID := make(map[uuid.UUID]*model.RoomSummary, len(rooms))
	for i := range rooms {
		roomByID[rooms[i].ID] = rooms[i].Summary()
	}
	guestByID := make(map[uuid.UUID]*model.GuestSummary, len(guests))
	for i := range guests {
		guestByID[guests[i].ID] = guests[i].Summary()
	}

	for _, b := range bookings {
		out = append(out, model.BookingDetails{
			Booking: b,
			Room:    roomByID[b.RoomID],
			Guest:   guestByID[b.GuestID],
		})
	}
	return out, nil
}
