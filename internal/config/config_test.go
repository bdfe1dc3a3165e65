package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, ":50051", cfg.GRPCAddr)
	assert.Equal(t, "/api", cfg.BasePath)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("GRPC_ADDR", "")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Empty(t, cfg.GRPCAddr)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 7, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"DB_MAX_OPEN_CONNS", "many", "DB_MAX_OPEN_CONNS"},
		{"DB_AUTO_MIGRATE", "maybe", "DB_AUTO_MIGRATE"},
		{"SHUTDOWN_TIMEOUT", "soon", "SHUTDOWN_TIMEOUT"},
		{"DB_DRIVER", "oracle", "DB_DRIVER"},
		{"DB_LOG_LEVEL", "loud", "DB_LOG_LEVEL"},
		{"DB_CONNECT_ATTEMPTS", "0", "DB_CONNECT_ATTEMPTS"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
