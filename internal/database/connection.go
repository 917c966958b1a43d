package database

import (
	"errors"
	"os"

	"github.com/thereayou/chirp/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func (d *Database) Connect() error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}

	// TranslateError maps driver-level unique violations to
	// gorm.ErrDuplicatedKey so callers can tell them apart.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}

	err = db.AutoMigrate(&models.User{}, &models.Post{}, &models.Follow{})
	if err != nil {
		return err
	}

	d.db = db

	return nil
}
