// Package db opens the gorm connection for the configured driver.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds database connection parameters.
type Config struct {
	Driver        string // postgres, mysql or sqlite
	User          string
	Password      string
	Host          string
	Port          string
	Name          string
	SSLMode       string
	InstanceName  string // Cloud SQL instance connection name; connects through the unix socket when set
	SQLitePath    string
	RunMigrations bool
}

// connectTimeout bounds the startup retry loop.
const connectTimeout = 60 * time.Second

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// BuildDSN constructs the driver-specific data source name from cfg.
func BuildDSN(cfg Config) string {
	switch cfg.Driver {
	case "mysql":
		if cfg.InstanceName != "" {
			return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
				cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.Host, portOr(cfg.Port, "3306"), cfg.Name)
	case "sqlite":
		return cfg.SQLitePath
	default:
		host := cfg.Host
		if cfg.InstanceName != "" {
			host = "/cloudsql/" + cfg.InstanceName
		}
		sslmode := cfg.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			host, cfg.User, cfg.Password, cfg.Name, portOr(cfg.Port, "5432"), sslmode)
	}
}

// Dialector returns the gorm dialector for cfg.Driver.
func Dialector(cfg Config) gorm.Dialector {
	dsn := BuildDSN(cfg)
	switch cfg.Driver {
	case "mysql":
		return gmysql.Open(dsn)
	case "sqlite":
		return sqlite.Open(dsn)
	default:
		return postgres.Open(dsn)
	}
}

// GormConfig is shared by the server and the tests so duplicate keys surface as gorm.ErrDuplicatedKey.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(dsn string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// OpenDB connects using cfg and, when cfg.RunMigrations is set, migrates models.
func OpenDB(cfg Config, models ...any) (*gorm.DB, error) {
	dsn := BuildDSN(cfg)
	db, err := ConnectWithRetry(dsn, connectTimeout, func(string) (*gorm.DB, error) {
		return gorm.Open(Dialector(cfg), GormConfig())
	})
	if err != nil {
		return nil, err
	}
	slog.Info("database connected", "driver", cfg.Driver)

	if cfg.RunMigrations || cfg.Driver == "sqlite" {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return db, nil
}

// Ping checks that the underlying connection pool can reach the database.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func portOr(port, def string) string {
	if port == "" {
		return def
	}
	return port
}
