package models

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:64;not null"`
	Email        string `gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string `gorm:"not null"`
	AboutMe      string `gorm:"size:140"`
	LastSeenAt   time.Time
	CreatedAt    time.Time

	Posts []Post `gorm:"foreignKey:AuthorID"`
}

// SetPassword stores a bcrypt hash of the plaintext. The plaintext itself
// is never persisted.
func (u *User) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether plaintext matches the stored hash.
func (u *User) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}

// Avatar returns the Gravatar URL for the user's email at the given pixel
// size, falling back to a generated identicon.
func (u *User) Avatar(size int) string {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	digest := md5.Sum([]byte(email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon&s=%d", digest, size)
}
