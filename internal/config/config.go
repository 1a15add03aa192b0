package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// EnvProduction disables stack traces in error responses and switches logs to JSON.
	EnvProduction = "production"
	// DriverMySQL selects gorm.io/driver/mysql.
	DriverMySQL = "mysql"
	// DriverPostgres selects gorm.io/driver/postgres.
	DriverPostgres = "postgres"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env         string
	ServerPort  string
	LogLevel    string
	SwaggerHost string

	DBDriver          string
	DatabaseDSN       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	RedisAddr    string
	RedisDB      int
	RedisPass    string
	RoomCacheTTL time.Duration

	JWTSecret    string
	JWTExpiresIn time.Duration

	ShutdownTimeout time.Duration

	SeedAdminEmail    string
	SeedAdminPassword string
}

// Load builds Config from environment with sensible defaults. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:         getEnv("APP_ENV", "development"),
		ServerPort:  getEnv("SERVER_PORT", "5000"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),

		DBDriver:          strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),
		DatabaseDSN:       getEnv("DATABASE_DSN", "user:password@tcp(localhost:3306)/hotel?charset=utf8mb4&parseTime=True&loc=UTC"),
		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		RoomCacheTTL: getEnvDuration("ROOM_CACHE_TTL", 5*time.Minute),

		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		JWTExpiresIn: getEnvDuration("JWT_EXPIRES_IN", 7*24*time.Hour),

		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@hotel.local"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}
}

// IsProduction reports whether the process runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Validate rejects configurations the server cannot safely start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == "change-me") {
		return errors.New("config: JWT_SECRET must be set in production")
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("config: JWT_EXPIRES_IN must be positive")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
