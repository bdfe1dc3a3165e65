// Package config reads runtime settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	HTTPAddr        string
	GRPCAddr        string
	BasePath        string
	GinMode         string
	AllowedOrigins  []string
	RedisAddr       string
	ShutdownTimeout time.Duration
	Database        Database
}

type Database struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectAttempts int
	AutoMigrate     bool
	LogLevel        string
}

// Load applies .env (if present) and parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	p := parser{}
	cfg := Config{
		HTTPAddr:        p.str("HTTP_ADDR", ":8080"),
		GRPCAddr:        p.str("GRPC_ADDR", ":50051"),
		BasePath:        p.str("HTTP_BASE_PATH", "/api"),
		GinMode:         p.str("GIN_MODE", "release"),
		AllowedOrigins:  p.list("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RedisAddr:       p.str("REDIS_ADDR", ""),
		ShutdownTimeout: p.duration("SHUTDOWN_TIMEOUT", 5*time.Second),
		Database: Database{
			Driver:          p.str("DB_DRIVER", DriverMySQL),
			DSN:             p.str("DB_DSN", "root:root@tcp(localhost:3306)/catalog?parseTime=true"),
			MaxOpenConns:    p.int("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:    p.int("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: p.duration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			ConnectAttempts: p.int("DB_CONNECT_ATTEMPTS", 5),
			AutoMigrate:     p.bool("DB_AUTO_MIGRATE", true),
			LogLevel:        p.str("DB_LOG_LEVEL", "warn"),
		},
	}
	if p.err != nil {
		return Config{}, p.err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("DB_DRIVER: unsupported driver %q", c.Database.Driver)
	}
	switch c.Database.LogLevel {
	case "silent", "error", "warn", "info":
	default:
		return fmt.Errorf("DB_LOG_LEVEL: unsupported level %q", c.Database.LogLevel)
	}
	if c.Database.ConnectAttempts < 1 {
		return errors.New("DB_CONNECT_ATTEMPTS: must be at least 1")
	}
	if c.HTTPAddr == "" {
		return errors.New("HTTP_ADDR: must not be empty")
	}
	return nil
}

// parser keeps the first error so FromEnv reads like a table of defaults.
type parser struct {
	err error
}

func (p *parser) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return def
}

func (p *parser) list(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (p *parser) int(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		p.fail(key, err)
		return def
	}
	return n
}

func (p *parser) bool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		p.fail(key, err)
		return def
	}
	return b
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		p.fail(key, err)
		return def
	}
	return d
}

func (p *parser) fail(key string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
}
