package dto

import (
	"time"

	"github.com/thereayou/chirp/internal/models"
)

type CreatePostRequest struct {
	Body string `json:"body" binding:"required,min=1,max=140"`
}

type PostResponse struct {
	ID        uint      `json:"id"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPostResponse(p *models.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Body:      p.Body,
		Author:    p.Author.Username,
		AvatarURL: p.Author.Avatar(64),
		CreatedAt: p.CreatedAt,
	}
}

func NewPostResponses(posts []models.Post) []PostResponse {
	out := make([]PostResponse, len(posts))
	for i := range posts {
		out[i] = NewPostResponse(&posts[i])
	}
	return out
}
