package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hotelhub/internal/auth"
	"hotelhub/internal/model"
	"hotelhub/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input service.RegisterInput) (*model.User, string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

type MockRoomService struct {
	mock.Mock
}

func (m *MockRoomService) List(ctx context.Context, filter model.RoomFilter) ([]model.Room, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Room), args.Error(1)
}

func (m *MockRoomService) Search(ctx context.Context, query service.AvailabilityQuery) ([]model.Room, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Room), args.Error(1)
}

func (m *MockRoomService) Get(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *MockRoomService) Create(ctx context.Context, room *model.Room) (*model.Room, error) {
	args := m.Called(ctx, room)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *MockRoomService) Update(ctx context.Context, id uuid.UUID, patch model.RoomPatch) (*model.Room, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *MockRoomService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomService) Seed(ctx context.Context, rooms []model.Room) (int, error) {
	args := m.Called(ctx, rooms)
	return args.Int(0), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) details(args mock.Arguments) (*model.BookingDetails, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookingDetails), args.Error(1)
}

func (m *MockBookingService) list(args mock.Arguments) ([]model.BookingDetails, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BookingDetails), args.Error(1)
}

func (m *MockBookingService) Create(ctx context.Context, requester *model.User, input service.CreateBookingInput) (*model.BookingDetails, error) {
	return m.details(m.Called(ctx, requester, input))
}

func (m *MockBookingService) List(ctx context.Context, requester *model.User) ([]model.BookingDetails, error) {
	return m.list(m.Called(ctx, requester))
}

func (m *MockBookingService) ListForGuest(ctx context.Context, guestID uuid.UUID) ([]model.BookingDetails, error) {
	return m.list(m.Called(ctx, guestID))
}

func (m *MockBookingService) Get(ctx context.Context, requester *model.User, id uuid.UUID) (*model.BookingDetails, error) {
	return m.details(m.Called(ctx, requester, id))
}

func (m *MockBookingService) Update(ctx context.Context, requester *model.User, id uuid.UUID, patch model.BookingPatch) (*model.BookingDetails, error) {
	return m.details(m.Called(ctx, requester, id, patch))
}

func (m *MockBookingService) Cancel(ctx context.Context, requester *model.User, id uuid.UUID) (*model.BookingDetails, error) {
	return m.details(m.Called(ctx, requester, id))
}

func (m *MockBookingService) CheckIn(ctx context.Context, requester *model.User, id uuid.UUID) (*model.BookingDetails, error) {
	return m.details(m.Called(ctx, requester, id))
}

func (m *MockBookingService) CheckOut(ctx context.Context, requester *model.User, id uuid.UUID) (*model.BookingDetails, error) {
	return m.details(m.Called(ctx, requester, id))
}

type MockGuestService struct {
	mock.Mock
}

func (m *MockGuestService) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockGuestService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockGuestService) Update(ctx context.Context, requester *model.User, id uuid.UUID, update service.GuestUpdate) (*model.User, error) {
	args := m.Called(ctx, requester, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockGuestService) Bookings(ctx context.Context, id uuid.UUID) ([]model.BookingDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BookingDetails), args.Error(1)
}

type structValidator struct{}

func (structValidator) Validate(i interface{}) error {
	return model.ValidateStruct(i)
}

// newEcho builds an echo instance with the production error handler and validator.
func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = structValidator{}
	e.HTTPErrorHandler = NewHTTPErrorHandler(false)
	return e
}

// as attaches user as the resolved identity, standing in for the gate.
func as(user *model.User) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user != nil {
				auth.SetIdentity(c, user)
			}
			return next(c)
		}
	}
}

func serve(t *testing.T, e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var payload map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())
	}
	return rec, payload
}

func data(t *testing.T, payload map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := payload["data"].(map[string]interface{})
	require.True(t, ok, "payload has no data object: %v", payload)
	return d
}
