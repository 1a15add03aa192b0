package service

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotelhub/internal/errors"
	"hotelhub/internal/model"
)

func newRoom(number string) *model.Room {
	return &model.Room{
		RoomNumber:    number,
		Type:          model.RoomTypeDouble,
		Capacity:      2,
		PricePerNight: decimal.NewFromInt(120),
		Description:   "Sea view",
	}
}

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name          string
		room          *model.Room
		setupMock     func(*MockRoomRepository)
		expectedError error
	}{
		{
			name: "successful creation",
			room: newRoom("201"),
			setupMock: func(m *MockRoomRepository) {
				m.On("FindByNumber", mock.Anything, "201").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Room")).Return(nil)
			},
		},
		{
			name: "room number taken",
			room: newRoom("202"),
			setupMock: func(m *MockRoomRepository) {
				m.On("FindByNumber", mock.Anything, "202").Return(&model.Room{ID: uuid.New(), RoomNumber: "202"}, nil)
			},
			expectedError: errors.ErrRoomNumberTaken,
		},
		{
			name: "capacity out of range",
			room: func() *model.Room {
				r := newRoom("203")
				r.Capacity = 11
				return r
			}(),
			setupMock:     func(m *MockRoomRepository) {},
			expectedError: errors.Validation("", nil),
		},
		{
			name: "negative price",
			room: func() *model.Room {
				r := newRoom("204")
				r.PricePerNight = decimal.NewFromInt(-5)
				return r
			}(),
			setupMock:     func(m *MockRoomRepository) {},
			expectedError: errors.Validation("", nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rooms := new(MockRoomRepository)
			tt.setupMock(rooms)
			service := NewRoomService(rooms, new(MockBookingRepository), nil, time.Minute)

			created, err := service.Create(context.Background(), tt.room)
			if tt.expectedError != nil {
				assert.True(t, stderrors.Is(err, tt.expectedError), "got %v", err)
				assert.Nil(t, created)
			} else {
				require.NoError(t, err)
				assert.Equal(t, model.RoomStatusAvailable, created.Status)
				assert.NotNil(t, created.Amenities)
			}
			rooms.AssertExpectations(t)
		})
	}
}

func TestRoomService_GetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	room := newRoom("301")
	room.ID = uuid.New()
	room.Normalize()
	missing := uuid.New()

	rooms := new(MockRoomRepository)
	rooms.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	rooms.On("FindByID", mock.Anything, missing).Return(nil, gorm.ErrRecordNotFound)
	rooms.On("Update", mock.Anything, room).Return(nil)
	rooms.On("Delete", mock.Anything, room.ID).Return(nil)
	rooms.On("Delete", mock.Anything, missing).Return(gorm.ErrRecordNotFound)

	service := NewRoomService(rooms, new(MockBookingRepository), nil, time.Minute)

	got, err := service.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "301", got.RoomNumber)

	_, err = service.Get(ctx, missing)
	assert.True(t, stderrors.Is(err, errors.ErrRoomNotFound))

	price := decimal.NewFromInt(150)
	status := model.RoomStatusMaintenance
	amenities := []string{"wifi", "minibar"}
	updated, err := service.Update(ctx, room.ID, model.RoomPatch{PricePerNight: &price, Status: &status, Amenities: &amenities})
	require.NoError(t, err)
	assert.True(t, updated.PricePerNight.Equal(price))
	assert.Equal(t, model.RoomStatusMaintenance, updated.Status)
	assert.Equal(t, []string{"wifi", "minibar"}, []string(updated.Amenities))

	badCapacity := 0
	_, err = service.Update(ctx, room.ID, model.RoomPatch{Capacity: &badCapacity})
	assert.True(t, stderrors.Is(err, errors.Validation("", nil)))

	_, err = service.Update(ctx, missing, model.RoomPatch{Status: &status})
	assert.True(t, stderrors.Is(err, errors.ErrRoomNotFound))

	require.NoError(t, service.Delete(ctx, room.ID))
	assert.True(t, stderrors.Is(service.Delete(ctx, missing), errors.ErrRoomNotFound))
}

func TestRoomService_List(t *testing.T) {
	rooms := new(MockRoomRepository)
	minPrice := decimal.NewFromInt(100)
	filter := model.RoomFilter{Type: model.RoomTypeSuite, MinPrice: &minPrice}
	rooms.On("List", mock.Anything, filter, []uuid.UUID(nil)).Return([]model.Room{*newRoom("401")}, nil)

	service := NewRoomService(rooms, new(MockBookingRepository), nil, time.Minute)

	got, err := service.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	maxPrice := decimal.NewFromInt(50)
	_, err = service.List(context.Background(), model.RoomFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})
	assert.True(t, stderrors.Is(err, errors.Validation("", nil)))
	rooms.AssertExpectations(t)
}

func TestRoomService_Search(t *testing.T) {
	booked := uuid.New()
	checkIn, checkOut := day(10), day(12)

	t.Run("drops rooms booked for the stay", func(t *testing.T) {
		rooms := new(MockRoomRepository)
		bookings := new(MockBookingRepository)
		bookings.On("ConflictingRoomIDs", mock.Anything, checkIn, checkOut).Return([]uuid.UUID{booked}, nil)
		rooms.On("List", mock.Anything, model.RoomFilter{
			Type:        model.RoomTypeDouble,
			Status:      model.RoomStatusAvailable,
			MinCapacity: 2,
		}, []uuid.UUID{booked}).Return([]model.Room{*newRoom("102")}, nil)

		service := NewRoomService(rooms, bookings, nil, time.Minute)
		got, err := service.Search(context.Background(), AvailabilityQuery{
			CheckIn:     &checkIn,
			CheckOut:    &checkOut,
			Type:        model.RoomTypeDouble,
			MinCapacity: 2,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "102", got[0].RoomNumber)
		rooms.AssertExpectations(t)
		bookings.AssertExpectations(t)
	})

	t.Run("without dates only filters inventory", func(t *testing.T) {
		rooms := new(MockRoomRepository)
		bookings := new(MockBookingRepository)
		rooms.On("List", mock.Anything, model.RoomFilter{Status: model.RoomStatusAvailable}, []uuid.UUID(nil)).Return([]model.Room{}, nil)

		service := NewRoomService(rooms, bookings, nil, time.Minute)
		got, err := service.Search(context.Background(), AvailabilityQuery{CheckIn: &checkIn})
		require.NoError(t, err)
		assert.Empty(t, got)
		bookings.AssertNotCalled(t, "ConflictingRoomIDs", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		service := NewRoomService(new(MockRoomRepository), new(MockBookingRepository), nil, time.Minute)
		_, err := service.Search(context.Background(), AvailabilityQuery{CheckIn: &checkOut, CheckOut: &checkIn})
		assert.True(t, stderrors.Is(err, errors.Validation("", nil)))
	})
}

func TestRoomService_Seed(t *testing.T) {
	existing := newRoom("101")
	existing.ID = uuid.New()

	rooms := new(MockRoomRepository)
	rooms.On("FindByNumber", mock.Anything, "101").Return(existing, nil)
	rooms.On("FindByNumber", mock.Anything, "102").Return(nil, gorm.ErrRecordNotFound)
	rooms.On("Update", mock.Anything, mock.MatchedBy(func(r *model.Room) bool { return r.ID == existing.ID })).Return(nil)
	rooms.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Room) bool { return r.RoomNumber == "102" })).Return(nil)

	service := NewRoomService(rooms, new(MockBookingRepository), nil, time.Minute)
	created, err := service.Seed(context.Background(), []model.Room{*newRoom("101"), *newRoom("102")})
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	rooms.AssertExpectations(t)
}
