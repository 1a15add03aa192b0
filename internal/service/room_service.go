package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hotelhub/internal/cache"
	"hotelhub/internal/errors"
	"hotelhub/internal/model"
	"hotelhub/internal/repository"
)

// DefaultRoomCacheTTL is used when no TTL is configured.
const DefaultRoomCacheTTL = 5 * time.Minute

// AvailabilityQuery narrows an availability search. CheckIn and CheckOut are
// only applied when both are set.
type AvailabilityQuery struct {
	CheckIn     *time.Time
	CheckOut    *time.Time
	Type        model.RoomType
	MinCapacity int
}

// RoomService handles room inventory operations.
type RoomService interface {
	List(ctx context.Context, filter model.RoomFilter) ([]model.Room, error)
	Search(ctx context.Context, query AvailabilityQuery) ([]model.Room, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Room, error)
	Create(ctx context.Context, room *model.Room) (*model.Room, error)
	Update(ctx context.Context, id uuid.UUID, patch model.RoomPatch) (*model.Room, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Seed(ctx context.Context, rooms []model.Room) (int, error)
}

type roomService struct {
	roomRepo    repository.RoomRepository
	bookingRepo repository.BookingRepository
	cache       *cache.Client
	cacheTTL    time.Duration
}

// NewRoomService creates a new room service. A nil cache disables caching.
func NewRoomService(roomRepo repository.RoomRepository, bookingRepo repository.BookingRepository, cache *cache.Client, cacheTTL time.Duration) RoomService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultRoomCacheTTL
	}
	return &roomService{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

func (s *roomService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("room:%s", id.String())
}

// List returns rooms matching filter.
func (s *roomService) List(ctx context.Context, filter model.RoomFilter) ([]model.Room, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, errors.Validation("", map[string]string{"minPrice": "minPrice cannot exceed maxPrice"})
	}
	rooms, err := s.roomRepo.List(ctx, filter, nil)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// Search returns available rooms, dropping those with an active booking
// overlapping the requested stay.
func (s *roomService) Search(ctx context.Context, query AvailabilityQuery) ([]model.Room, error) {
	filter := model.RoomFilter{
		Type:        query.Type,
		Status:      model.RoomStatusAvailable,
		MinCapacity: query.MinCapacity,
	}

	var booked []uuid.UUID
	if query.CheckIn != nil && query.CheckOut != nil {
		if !query.CheckOut.After(*query.CheckIn) {
			return nil, errors.Validation("", map[string]string{"checkOut": "check-out date must be after check-in date"})
		}
		ids, err := s.bookingRepo.ConflictingRoomIDs(ctx, *query.CheckIn, *query.CheckOut)
		if err != nil {
			return nil, fmt.Errorf("find booked rooms: %w", err)
		}
		booked = ids
	}

	rooms, err := s.roomRepo.List(ctx, filter, booked)
	if err != nil {
		return nil, fmt.Errorf("search rooms: %w", err)
	}
	return rooms, nil
}

// Get retrieves a room by ID with caching.
func (s *roomService) Get(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var cached model.Room
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), room, s.cacheTTL)
	return room, nil
}

// Create validates and persists a new room.
func (s *roomService) Create(ctx context.Context, room *model.Room) (*model.Room, error) {
	room.ID = uuid.Nil
	room.Normalize()
	if err := model.ValidateRoom(room); err != nil {
		return nil, err
	}

	if err := s.ensureNumberFree(ctx, room.RoomNumber, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrRoomNumberTaken
		}
		return nil, fmt.Errorf("create room: %w", err)
	}
	return room, nil
}

// Update applies patch to an existing room.
func (s *roomService) Update(ctx context.Context, id uuid.UUID, patch model.RoomPatch) (*model.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}

	previousNumber := room.RoomNumber
	patch.Apply(room)
	room.Normalize()
	if err := model.ValidateRoom(room); err != nil {
		return nil, err
	}

	if room.RoomNumber != previousNumber {
		if err := s.ensureNumberFree(ctx, room.RoomNumber, room.ID); err != nil {
			return nil, err
		}
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrRoomNumberTaken
		}
		return nil, fmt.Errorf("update room: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return room, nil
}

// Delete removes a room.
func (s *roomService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.roomRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrRoomNotFound
		}
		return fmt.Errorf("delete room: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// Seed inserts rooms whose number is not yet taken and updates the rest.
// It returns how many rooms were created.
func (s *roomService) Seed(ctx context.Context, rooms []model.Room) (int, error) {
	created := 0
	for i := range rooms {
		room := rooms[i]
		room.Normalize()
		if err := model.ValidateRoom(&room); err != nil {
			return created, fmt.Errorf("room %s: %w", room.RoomNumber, err)
		}

		existing, err := s.roomRepo.FindByNumber(ctx, room.RoomNumber)
		switch {
		case err == nil:
			room.ID = existing.ID
			room.CreatedAt = existing.CreatedAt
			if err := s.roomRepo.Update(ctx, &room); err != nil {
				return created, fmt.Errorf("update room %s: %w", room.RoomNumber, err)
			}
			_ = s.cache.Delete(ctx, s.cacheKey(room.ID))
		case stderrors.Is(err, gorm.ErrRecordNotFound):
			room.ID = uuid.Nil
			if err := s.roomRepo.Create(ctx, &room); err != nil {
				return created, fmt.Errorf("create room %s: %w", room.RoomNumber, err)
			}
			created++
		default:
			return created, fmt.Errorf("find room %s: %w", room.RoomNumber, err)
		}
	}
	return created, nil
}

func (s *roomService) ensureNumberFree(ctx context.Context, roomNumber string, self uuid.UUID) error {
	existing, err := s.roomRepo.FindByNumber(ctx, roomNumber)
	if err == nil && existing != nil && existing.ID != self {
		return errors.ErrRoomNumberTaken
	}
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check room number: %w", err)
	}
	return nil
}
