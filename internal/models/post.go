package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey"`
	Body      string    `gorm:"size:140;not null"`
	CreatedAt time.Time `gorm:"index"`
	AuthorID  uint      `gorm:"not null;index"`

	Author User `gorm:"foreignKey:AuthorID"`
}
