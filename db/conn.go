// Package db contains things related to SQLite
package db

import (
	"bitwise74/account-api/internal/model"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open("database.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}

	// The unique index on email acts as the storage-level backstop for
	// the duplicate check done at registration and activation time
	err = db.AutoMigrate(model.User{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
