package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"keepwise-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Hub fans note events out to the viewers connected for a user. With redis
// available, events are also published on a shared channel so instances
// behind a load balancer reach viewers connected elsewhere.
type Hub struct {
	// Registered clients map: uid -> list of clients (multi-tab)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out; nil for single instance.
	rdb *redis.Client

	logger logger.ILogger
}

const feedChannel = "note_events"

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send implements service.INoteFeed. Delivery is best effort; a slow client
// gets disconnected rather than blocking the hub.
func (h *Hub) Send(userID string, event string, data interface{}) {
	message, err := json.Marshal(map[string]interface{}{
		"type": event,
		"data": data,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to serialize feed event", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliverLocal(userID, message)

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"target_user_id": userID,
			"message":        json.RawMessage(message),
		})
		h.rdb.Publish(context.Background(), feedChannel, payload)
	}
}

func (h *Hub) deliverLocal(userID string, message []byte) {
	// Sends happen under the read lock; the run loop closes Send under the
	// write lock, so a send can never race a close.
	h.mu.RLock()
	var dropped []*Client
	for _, client := range h.clients[userID] {
		select {
		case client.Send <- message:
		default:
			dropped = append(dropped, client)
		}
	}
	h.mu.RUnlock()

	// Unregistration takes the write lock, so it must wait until the read
	// lock above is released.
	for _, client := range dropped {
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": userID})
		h.unregister <- client
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, feedChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Malformed redis feed message", map[string]interface{}{"error": err.Error()})
			continue
		}

		h.deliverLocal(payload.TargetUserID, payload.Message)
	}
}
