package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hotelhub/internal/model"
)

// RoomRepository defines room persistence operations.
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error)
	FindByNumber(ctx context.Context, roomNumber string) (*model.Room, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Room, error)
	List(ctx context.Context, filter model.RoomFilter, excludeIDs []uuid.UUID) ([]model.Room, error)
}

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new room repository.
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

// Create creates a new room.
func (r *roomRepository) Create(ctx context.Context, room *model.Room) error {
	return storeErr(r.db.WithContext(ctx).Create(room).Error)
}

// Update updates an existing room.
func (r *roomRepository) Update(ctx context.Context, room *model.Room) error {
	return storeErr(r.db.WithContext(ctx).Save(room).Error)
}

// Delete removes a room. It returns gorm.ErrRecordNotFound when nothing was deleted.
func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Room{})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds a room by ID.
func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		return nil, storeErr(err)
	}
	return &room, nil
}

// FindByNumber finds a room by its room number.
func (r *roomRepository) FindByNumber(ctx context.Context, roomNumber string) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).Where("room_number = ?", roomNumber).First(&room).Error; err != nil {
		return nil, storeErr(err)
	}
	return &room, nil
}

func (r *roomRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Room, error) {
	var rooms []model.Room
	if len(ids) == 0 {
		return rooms, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rooms).Error; err != nil {
		return nil, storeErr(err)
	}
	return rooms, nil
}

// List returns rooms matching filter, ordered by room number, skipping excludeIDs.
func (r *roomRepository) List(ctx context.Context, filter model.RoomFilter, excludeIDs []uuid.UUID) ([]model.Room, error) {
	q := r.db.WithContext(ctx).Model(&model.Room{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.MinPrice != nil {
		q = q.Where("price_per_night >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price_per_night <= ?", *filter.MaxPrice)
	}
	if filter.MinCapacity > 0 {
		q = q.Where("capacity >= ?", filter.MinCapacity)
	}
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}

	rooms := []model.Room{}
	if err := q.Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, storeErr(err)
	}
	return rooms, nil
}
