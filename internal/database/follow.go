package database

import (
	"github.com/thereayou/chirp/internal/models"
	"gorm.io/gorm/clause"
)

// Follow adds the directed edge follower -> followed. Following a user
// twice is a no-op: the unique pair index plus ON CONFLICT DO NOTHING
// absorbs duplicates, including two callers racing on the same pair.
func (d *Database) Follow(followerID, followedID uint) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	if _, err := d.GetUser(followerID); err != nil {
		return err
	}
	if _, err := d.GetUser(followedID); err != nil {
		return err
	}

	edge := models.Follow{FollowerID: followerID, FollowedID: followedID}
	return d.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
}

// Unfollow removes the edge follower -> followed. Removing an edge that
// does not exist is a no-op.
func (d *Database) Unfollow(followerID, followedID uint) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	if _, err := d.GetUser(followerID); err != nil {
		return err
	}
	if _, err := d.GetUser(followedID); err != nil {
		return err
	}

	return d.db.
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
}

func (d *Database) IsFollowing(followerID, followedID uint) (bool, error) {
	var count int64
	err := d.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

// FollowingCount returns the number of users the given user follows.
func (d *Database) FollowingCount(userID uint) (int64, error) {
	var count int64
	err := d.db.Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}

// FollowersCount returns the number of users following the given user.
func (d *Database) FollowersCount(userID uint) (int64, error) {
	var count int64
	err := d.db.Model(&models.Follow{}).
		Where("followed_id = ?", userID).
		Count(&count).Error
	return count, err
}

// FollowingOf lists the users the given user follows.
func (d *Database) FollowingOf(userID uint) ([]models.User, error) {
	var users []models.User
	err := d.db.
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("users.username ASC").
		Find(&users).Error
	return users, err
}

// FollowersOf lists the users following the given user.
func (d *Database) FollowersOf(userID uint) ([]models.User, error) {
	var users []models.User
	err := d.db.
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Order("users.username ASC").
		Find(&users).Error
	return users, err
}

// FollowerIDs returns just the ids of the followers, for fanout.
func (d *Database) FollowerIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := d.db.Model(&models.Follow{}).
		Where("followed_id = ?", userID).
		Pluck("follower_id", &ids).Error
	return ids, err
}
