package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/thereayou/chirp/internal/middleware"
	ws "github.com/thereayou/chirp/internal/websocket"
)

// FeedStreamHandler upgrades connections for the live timeline stream.
type FeedStreamHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewFeedStreamHandler(hub *ws.Hub) *FeedStreamHandler {
	return &FeedStreamHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: restrict origin once the frontend domain is fixed
				return true
			},
		},
	}
}

// Stream upgrades the request and starts the read/write pumps. Events
// arrive whenever someone the user follows publishes a post.
func (h *FeedStreamHandler) Stream(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, userID.(uint))

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
