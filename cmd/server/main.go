package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "hotelhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"hotelhub/internal/auth"
	"hotelhub/internal/cache"
	"hotelhub/internal/config"
	"hotelhub/internal/db"
	"hotelhub/internal/handler"
	"hotelhub/internal/repository"
	"hotelhub/internal/router"
	"hotelhub/internal/service"
)

// @title Hotel Management API
// @version 1.0
// @description Hotel management API with room inventory, bookings, guest administration and JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	setupLogging(cfg)

	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseDSN, db.OptionsFromConfig(cfg))
	if err != nil {
		logrus.Fatalf("database init: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		logrus.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(ctx); err != nil {
		logrus.WithError(err).Warn("redis unavailable, continuing without cache")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	roomRepo := repository.NewRoomRepository(gormDB)
	bookingRepo := repository.NewBookingRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn)
	tokenStore := auth.NewTokenStore(cacheClient)
	gate := auth.NewGate(jwtService, tokenStore, userRepo)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	roomService := service.NewRoomService(roomRepo, bookingRepo, cacheClient, cfg.RoomCacheTTL)
	bookingService := service.NewBookingService(bookingRepo, roomRepo, userRepo)
	guestService := service.NewGuestService(userRepo, bookingService)

	e := echo.New()
	router.Register(e, cfg, gate, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Room:    handler.NewRoomHandler(roomService),
		Booking: handler.NewBookingHandler(bookingService),
		Guest:   handler.NewGuestHandler(guestService),
	})

	logrus.Infof("Swagger documentation available at: %s", swaggerURL(cfg.SwaggerHost))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.ServerPort
		logrus.WithField("addr", addr).Info("server listening")
		if err := e.Start(addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logrus.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("server stopped with error")
	}

	if err := db.Close(gormDB); err != nil {
		logrus.WithError(err).Warn("close database")
	}
	if err := cacheClient.Close(); err != nil {
		logrus.WithError(err).Warn("close redis")
	}
	logrus.Info("server stopped")
}

func setupLogging(cfg *config.Config) {
	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stdout)
}

// swaggerURL builds the UI address. SwaggerHost may already include a scheme.
func swaggerURL(host string) string {
	switch {
	case host == "":
		return "http://localhost:5000/api-docs/index.html"
	case strings.HasPrefix(host, "http://"), strings.HasPrefix(host, "https://"):
		return host + "/api-docs/index.html"
	default:
		return "http://" + host + "/api-docs/index.html"
	}
}
