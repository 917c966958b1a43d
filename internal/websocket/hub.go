package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MessageType classifies timeline stream events.
type MessageType string

const (
	TypeConnect MessageType = "connect"
	TypePing    MessageType = "ping"
	TypePong    MessageType = "pong"

	// TypeNewPost carries a post that just landed in the recipient's
	// timeline.
	TypeNewPost MessageType = "new_post"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// TimelineEvent is fanned out to every connection of the listed users.
type TimelineEvent struct {
	UserIDs []uint
	Payload []byte
}

// Hub tracks open timeline streams. One user may hold several
// connections (multiple tabs, devices); an event addressed to a user
// reaches all of them.
type Hub struct {
	clients map[uuid.UUID]*Client

	// connections per user id
	userClients map[uint]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	broadcast chan *TimelineEvent

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uint]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan *TimelineEvent),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run drives the hub loop until Stop is called.
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.deliver(event)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop shuts down the hub and closes every connection.
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// NotifyUsers sends an event of the given type to every connection of
// every listed user. Users without open connections are skipped.
func (h *Hub) NotifyUsers(userIDs []uint, msgType MessageType, data interface{}) error {
	msg := Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
	}
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return err
		}
		msg.Data = jsonData
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- &TimelineEvent{UserIDs: userIDs, Payload: payload}:
		return nil
	case <-h.ctx.Done():
		return ErrHubStopped
	}
}

// ConnectedUsers reports how many distinct users hold open streams.
func (h *Hub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userClients)
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
	}
	h.userClients[client.UserID][client.ID] = client
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	delete(h.clients, client.ID)
	close(client.Send)

	if conns, ok := h.userClients[client.UserID]; ok {
		delete(conns, client.ID)
		if len(conns) == 0 {
			delete(h.userClients, client.UserID)
		}
	}
}

func (h *Hub) deliver(event *TimelineEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, userID := range event.UserIDs {
		for _, client := range h.userClients[userID] {
			select {
			case client.Send <- event.Payload:
			default:
				// slow consumer, drop the event for this connection
			}
		}
	}
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg, _ := json.Marshal(Message{Type: TypePing, Timestamp: time.Now().UTC()})
	for _, client := range h.clients {
		select {
		case client.Send <- msg:
		default:
		}
	}
}
