package database

import (
	"github.com/thereayou/chirp/internal/models"
)

func (d *Database) SavePost(post *models.Post) error {
	return d.db.Create(post).Error
}

func (d *Database) GetPost(id uint) (*models.Post, error) {
	var post models.Post
	if err := d.db.Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetUserPosts returns the user's own posts, newest first.
func (d *Database) GetUserPosts(authorID uint) ([]models.Post, error) {
	var posts []models.Post
	err := d.db.
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Preload("Author").
		Find(&posts).Error
	return posts, err
}
