package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/chirp/internal/database"
	"github.com/thereayou/chirp/internal/handlers/dto"
	"github.com/thereayou/chirp/internal/middleware"
	"github.com/thereayou/chirp/internal/models"
	ws "github.com/thereayou/chirp/internal/websocket"
)

const defaultPageSize = 25

type PostHandler struct {
	db  *database.Database
	hub *ws.Hub
}

func NewPostHandler(db *database.Database, hub *ws.Hub) *PostHandler {
	return &PostHandler{db: db, hub: hub}
}

// CreatePost stores a new post and pushes it to the author's connected
// followers.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := &models.Post{
		Body:      req.Body,
		AuthorID:  userID,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.db.SavePost(post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}

	// Reload with the author so the response and fanout carry the
	// display name.
	full, err := h.db.GetPost(post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}

	h.notifyFollowers(full)

	c.JSON(http.StatusCreated, dto.NewPostResponse(full))
}

// GetFeed returns the authenticated user's timeline page.
func (h *PostHandler) GetFeed(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)
	limit, offset := pageParams(c)

	posts, err := h.db.FollowingPostsPage(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": dto.NewPostResponses(posts)})
}

// Explore returns every post on the site, newest first.
func (h *PostHandler) Explore(c *gin.Context) {
	limit, offset := pageParams(c)

	posts, err := h.db.AllPosts(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": dto.NewPostResponses(posts)})
}

// UserPosts lists the posts authored by :username.
func (h *PostHandler) UserPosts(c *gin.Context) {
	user, err := h.db.FindUserByUsername(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	posts, err := h.db.GetUserPosts(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": dto.NewPostResponses(posts)})
}

func (h *PostHandler) notifyFollowers(post *models.Post) {
	ids, err := h.db.FollowerIDs(post.AuthorID)
	if err != nil {
		log.Printf("fanout: failed to load followers: %v", err)
		return
	}

	// The author's timeline includes their own posts, so the author's
	// other sessions get the event too.
	ids = append(ids, post.AuthorID)

	if err := h.hub.NotifyUsers(ids, ws.TypeNewPost, dto.NewPostResponse(post)); err != nil {
		log.Printf("fanout: failed to notify followers: %v", err)
	}
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit <= 0 || limit > 100 {
		limit = defaultPageSize
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
