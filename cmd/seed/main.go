package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotelhub/internal/auth"
	"hotelhub/internal/config"
	"hotelhub/internal/db"
	"hotelhub/internal/model"
	"hotelhub/internal/repository"
	"hotelhub/internal/service"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.Info("Starting seed script...")

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	// Connect to database
	gormDB, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseDSN, db.OptionsFromConfig(cfg))
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(gormDB)

	if err := db.Migrate(gormDB); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	rooms := defaultRooms()
	if len(os.Args) > 1 {
		rooms, err = loadRooms(os.Args[1])
		if err != nil {
			logrus.Fatalf("Failed to load rooms: %v", err)
		}
		logrus.Infof("Loaded %d rooms from %s", len(rooms), os.Args[1])
	}

	roomRepo := repository.NewRoomRepository(gormDB)
	bookingRepo := repository.NewBookingRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	roomService := service.NewRoomService(roomRepo, bookingRepo, nil, cfg.RoomCacheTTL)

	created, err := roomService.Seed(ctx, rooms)
	if err != nil {
		logrus.Fatalf("Failed to seed rooms: %v", err)
	}
	logrus.WithFields(logrus.Fields{
		"created": created,
		"updated": len(rooms) - created,
	}).Info("Rooms seeded")

	if err := ensureAdmin(ctx, userRepo, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		logrus.Fatalf("Failed to seed admin: %v", err)
	}

	logrus.Info("Seed completed successfully!")
}

// loadRooms reads a JSON array of rooms.
func loadRooms(path string) ([]model.Room, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var rooms []model.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rooms, nil
}

// ensureAdmin creates the administrator account unless the email is already registered.
func ensureAdmin(ctx context.Context, repo repository.UserRepository, email, password string) error {
	if password == "" {
		logrus.Warn("SEED_ADMIN_PASSWORD not set, skipping admin account")
		return nil
	}

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("find admin: %w", err)
	}
	if existing != nil {
		logrus.WithField("email", existing.Email).Info("Admin account already exists")
		return nil
	}

	if len(password) < service.MinPasswordLength {
		return fmt.Errorf("admin password must be at least %d characters", service.MinPasswordLength)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Profile: model.Profile{
			FirstName: "Hotel",
			LastName:  "Administrator",
			Phone:     "0000000000",
		},
	}
	admin.Normalize()
	if err := model.ValidateUser(admin); err != nil {
		return err
	}
	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	logrus.WithField("email", admin.Email).Info("Admin account created")
	return nil
}

func defaultRooms() []model.Room {
	room := func(number string, roomType model.RoomType, capacity int, price int64, description string, amenities ...string) model.Room {
		return model.Room{
			RoomNumber:    number,
			Type:          roomType,
			Capacity:      capacity,
			PricePerNight: decimal.NewFromInt(price),
			Amenities:     datatypes.JSONSlice[string](amenities),
			Description:   description,
			Status:        model.RoomStatusAvailable,
		}
	}

	return []model.Room{
		room("101", model.RoomTypeSingle, 1, 80, "Quiet single room facing the garden", "wifi", "tv"),
		room("102", model.RoomTypeSingle, 1, 85, "Single room with work desk", "wifi", "desk"),
		room("201", model.RoomTypeDouble, 2, 120, "Double room with queen bed", "wifi", "tv", "minibar"),
		room("202", model.RoomTypeDouble, 2, 130, "Double room with city view", "wifi", "tv", "balcony"),
		room("301", model.RoomTypeSuite, 4, 250, "Suite with separate living area", "wifi", "tv", "minibar", "bathtub"),
		room("401", model.RoomTypeDeluxe, 3, 320, "Deluxe room with sea view terrace", "wifi", "tv", "minibar", "terrace"),
		room("501", model.RoomTypePresidential, 6, 900, "Top floor presidential suite", "wifi", "tv", "minibar", "jacuzzi", "butler"),
	}
}
