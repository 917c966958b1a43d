package database

import (
	"github.com/thereayou/chirp/internal/models"
	"gorm.io/gorm"
)

// followingPostsQuery selects the posts visible in a user's timeline: the
// user's own posts plus posts authored by anyone the user follows, newest
// first. Ties on the timestamp fall back to id descending so repeated
// queries return an identical order.
func (d *Database) followingPostsQuery(userID uint) *gorm.DB {
	followed := d.db.Model(&models.Follow{}).
		Select("followed_id").
		Where("follower_id = ?", userID)

	return d.db.Model(&models.Post{}).
		Where("author_id = ? OR author_id IN (?)", userID, followed).
		Order("created_at DESC, id DESC").
		Preload("Author")
}

// FollowingPosts returns the user's full timeline. A user following
// nobody still sees their own posts; an empty timeline is an empty slice,
// not an error.
func (d *Database) FollowingPosts(userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := d.followingPostsQuery(userID).Find(&posts).Error
	return posts, err
}

// FollowingPostsPage returns one page of the timeline.
func (d *Database) FollowingPostsPage(userID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := d.followingPostsQuery(userID).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// AllPosts returns a page of every post on the site, newest first. Backs
// the explore view.
func (d *Database) AllPosts(limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := d.db.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Preload("Author").
		Find(&posts).Error
	return posts, err
}
