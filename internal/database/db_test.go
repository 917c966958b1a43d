package database

import (
	"testing"
	"time"

	"github.com/thereayou/chirp/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A pooled connection would get its own separate in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Follow{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return NewDatabase(db)
}

func mustUser(t *testing.T, d *Database, username, email string) *models.User {
	t.Helper()

	u := &models.User{Username: username, Email: email, PasswordHash: "x"}
	if err := d.SaveUser(u); err != nil {
		t.Fatalf("save user %s: %v", username, err)
	}
	return u
}

func mustPost(t *testing.T, d *Database, author *models.User, body string, at time.Time) *models.Post {
	t.Helper()

	p := &models.Post{Body: body, AuthorID: author.ID, CreatedAt: at}
	if err := d.SavePost(p); err != nil {
		t.Fatalf("save post %q: %v", body, err)
	}
	return p
}
