package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"talky-backend/internal/models"
)

// NewSQLite opens (creating if needed) a SQLite database at path and migrates
// the chats table. ":memory:" is accepted for throwaway stores. Closing the
// returned *sql.DB releases the database.
func NewSQLite(path string) (*gorm.DB, *sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sqlite database object: %w", err)
	}

	// SQLite supports a single writer; this also keeps ":memory:" on one connection.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.ChatRecord{}); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	return db, sqlDB, nil
}
