package models

import (
	"time"
)

// Follow is a directed edge in the social graph: the follower's timeline
// includes the followed user's posts. The pair is unique so an edge is
// either present or absent, never duplicated.
type Follow struct {
	ID         uint `gorm:"primaryKey"`
	FollowerID uint `gorm:"not null;uniqueIndex:idx_follow_pair;index"`
	FollowedID uint `gorm:"not null;uniqueIndex:idx_follow_pair;index"`
	CreatedAt  time.Time

	Follower User `gorm:"foreignKey:FollowerID"`
	Followed User `gorm:"foreignKey:FollowedID"`
}
