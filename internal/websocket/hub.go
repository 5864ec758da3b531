package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ai-schemadesign-be/internal/pkg/logger"
	"ai-schemadesign-be/pkg/events"

	"github.com/redis/go-redis/v9"
)

// Hub fans thread lifecycle events out to every connected UI. The deployment
// is single operator, so there is no per-user routing, only broadcast.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"conn_id": client.ConnId})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"conn_id": client.ConnId})
			}
			h.mu.Unlock()
		}
	}
}

// Register hands a new connection to the hub loop.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Broadcast pushes a thread event to every connected client. With Redis
// configured the message goes through the shared channel so other instances
// deliver it too; Redis loops it back to this instance as well, so there is
// no direct local send in that path.
func (h *Hub) Broadcast(event events.Event) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": event.EventType(),
		"data": event.Payload(),
	})

	if h.rdb != nil {
		h.rdb.Publish(context.Background(), "cluster_events", data)
		return
	}
	h.broadcastLocal(data)
}

func (h *Hub) broadcastLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer, drop the connection.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance, including the publishing one, receives the message
	// here and delivers it to its local connections.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		if !json.Valid([]byte(msg.Payload)) {
			log.Printf("Redis msg parse error: invalid payload")
			continue
		}
		h.broadcastLocal([]byte(msg.Payload))
	}
}
