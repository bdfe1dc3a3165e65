package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rl1809/catalog/internal/config"
)

const (
	slowQueryThreshold = 200 * time.Millisecond
	maxConnectBackoff  = 10 * time.Second
)

// OpenDatabase connects to MySQL or PostgreSQL through gorm, retrying with
// exponential backoff until the server answers a ping.
func OpenDatabase(ctx context.Context, cfg config.Database) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         newGormLogger(cfg.LogLevel),
		TranslateError: true,
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.ConnectAttempts; attempt++ {
		db, err := open(ctx, cfg, gormCfg)
		if err == nil {
			log.Printf("connected to %s (attempt %d)", cfg.Driver, attempt)
			return db, nil
		}
		lastErr = err
		log.Printf("connect %s attempt %d failed: %v", cfg.Driver, attempt, err)

		if attempt == cfg.ConnectAttempts {
			break
		}
		wait := time.Duration(1<<uint(attempt-1)) * time.Second
		if wait > maxConnectBackoff {
			wait = maxConnectBackoff
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, fmt.Errorf("connect %s after %d attempts: %w", cfg.Driver, cfg.ConnectAttempts, lastErr)
}

func open(ctx context.Context, cfg config.Database, gormCfg *gorm.Config) (*gorm.DB, error) {
	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

func newDialector(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		dsn, err := mysqldriver.ParseDSN(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("parse mysql dsn: %w", err)
		}
		dsn.ParseTime = true

		connector, err := mysqldriver.NewConnector(dsn)
		if err != nil {
			return nil, fmt.Errorf("mysql connector: %w", err)
		}
		return gormmysql.New(gormmysql.Config{Conn: sql.OpenDB(connector)}), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func newGormLogger(level string) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  parseLogLevel(level),
			IgnoreRecordNotFoundError: true,
		},
	)
}

func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	}
	return logger.Warn
}
