package db

import (
	"fmt"                            // Error wrapping
	"literary_voice/internal/config" // Configuration
	"literary_voice/internal/domain" // Importing domain models
	"time"                           // UTC clock for autoCreateTime

	"github.com/glebarez/sqlite" // Pure Go sqlite driver for GORM
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
	"gorm.io/gorm/logger"  // GORM logger levels
)

// Open connects to the database selected by cfg.DBDriver
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return gorm.Open(mysql.Open(cfg.MySQLDSN()), gormConfig(cfg.IsProd)) // Open a MySQL connection pool
	case config.DriverSQLite, "":
		return OpenSQLite(cfg.SQLitePath, cfg.IsProd)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// OpenSQLite opens a sqlite database file, ":memory:" gives a private in-memory database
func OpenSQLite(path string, quiet bool) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), gormConfig(quiet))
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer; one connection serialises every transaction
	// and keeps in-memory databases alive for the lifetime of the pool
	sqlDB.SetMaxOpenConns(1)
	if err := gdb.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}
	return gdb, nil
}

func gormConfig(quiet bool) *gorm.Config {
	level := logger.Warn
	if quiet {
		level = logger.Error
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true, // Surface unique index violations as gorm.ErrDuplicatedKey
		// sqlite keeps timestamps as text, range filters only compare correctly
		// when every stored value and bound shares one offset
		NowFunc: func() time.Time { return time.Now().UTC() },
	}
}

// Migrate performs automatic migration for the database schema
func Migrate(gdb *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := gdb.AutoMigrate(&domain.User{}, &domain.Transaction{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
