package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/thereayou/chirp/internal/database"
	"github.com/thereayou/chirp/internal/handlers/dto"
	"github.com/thereayou/chirp/internal/middleware"
	"github.com/thereayou/chirp/internal/models"
)

type UserHandler struct {
	db *database.Database
}

func NewUserHandler(db *database.Database) *UserHandler {
	return &UserHandler{db: db}
}

// GetMe returns the authenticated user's own profile.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	user, err := h.db.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"about_me":     user.AboutMe,
		"avatar_url":   user.Avatar(128),
		"created_at":   user.CreatedAt,
		"last_seen_at": user.LastSeenAt,
	})
}

// UpdateMe updates the authenticated user's editable profile fields.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if req.AboutMe != nil {
		user.AboutMe = *req.AboutMe
	}

	if err := h.db.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"about_me": user.AboutMe,
	})
}

// GetProfile returns a user's public profile with follow state and
// counts, the data a profile page renders.
func (h *UserHandler) GetProfile(c *gin.Context) {
	viewerID := c.MustGet(middleware.UserIDKey).(uint)

	user, err := h.db.FindUserByUsername(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	following, err := h.db.FollowingCount(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	followers, err := h.db.FollowersCount(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	isFollowing, err := h.db.IsFollowing(viewerID, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              user.ID,
		"username":        user.Username,
		"about_me":        user.AboutMe,
		"avatar_url":      user.Avatar(128),
		"last_seen_at":    user.LastSeenAt,
		"following_count": following,
		"followers_count": followers,
		"is_following":    isFollowing,
	})
}

// Follow makes the authenticated user follow :username.
func (h *UserHandler) Follow(c *gin.Context) {
	followerID := c.MustGet(middleware.UserIDKey).(uint)

	target, err := h.db.FindUserByUsername(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := h.db.Follow(followerID, target.ID); err != nil {
		switch {
		case errors.Is(err, database.ErrSelfFollow):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot follow yourself"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to follow"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": target.Username})
}

// Unfollow removes the follow edge to :username.
func (h *UserHandler) Unfollow(c *gin.Context) {
	followerID := c.MustGet(middleware.UserIDKey).(uint)

	target, err := h.db.FindUserByUsername(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := h.db.Unfollow(followerID, target.ID); err != nil {
		switch {
		case errors.Is(err, database.ErrSelfFollow):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot unfollow yourself"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unfollow"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"unfollowed": target.Username})
}

// Followers lists the users following :username.
func (h *UserHandler) Followers(c *gin.Context) {
	h.listRelated(c, h.db.FollowersOf)
}

// Following lists the users :username follows.
func (h *UserHandler) Following(c *gin.Context) {
	h.listRelated(c, h.db.FollowingOf)
}

func (h *UserHandler) listRelated(c *gin.Context, list func(uint) ([]models.User, error)) {
	user, err := h.db.FindUserByUsername(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	users, err := list(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	result := make([]gin.H, len(users))
	for i, u := range users {
		result[i] = gin.H{
			"id":         u.ID,
			"username":   u.Username,
			"avatar_url": u.Avatar(64),
		}
	}

	c.JSON(http.StatusOK, gin.H{"users": result})
}
