package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SERVER_PORT", "")

	cfg := Load()

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiresIn)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ROOM_CACHE_TTL", "not-a-duration")

	cfg := Load()

	assert.Equal(t, 2*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 5*time.Minute, cfg.RoomCacheTTL)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "unknown driver",
			cfg:     Config{DBDriver: "mongo", JWTExpiresIn: time.Hour},
			wantErr: true,
		},
		{
			name:    "default secret in production",
			cfg:     Config{Env: EnvProduction, DBDriver: DriverMySQL, JWTSecret: "change-me", JWTExpiresIn: time.Hour},
			wantErr: true,
		},
		{
			name:    "zero expiry",
			cfg:     Config{DBDriver: DriverPostgres, JWTSecret: "s"},
			wantErr: true,
		},
		{
			name: "valid production",
			cfg:  Config{Env: EnvProduction, DBDriver: DriverPostgres, JWTSecret: "s3cret", JWTExpiresIn: time.Hour},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
