package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"sdch/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StatusEvent is the payload pushed over a document's status socket as it
// moves through its lifecycle.
type StatusEvent struct {
	Status        string `json:"status"`
	Tier          int    `json:"tier,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
}

type Hub struct {
	// Registered clients map: DocumentID -> List of Clients (multi-tab)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
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
			h.clients[client.DocumentID] = append(h.clients[client.DocumentID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"document_id": client.DocumentID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.DocumentID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.DocumentID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.DocumentID]) == 0 {
					delete(h.clients, client.DocumentID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"document_id": client.DocumentID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send pushes a status event to every local client watching documentID and
// publishes it to the cluster so other instances' local clients see it too.
func (h *Hub) Send(documentID uuid.UUID, event StatusEvent) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "document_status",
		"data": event,
	})

	h.mu.RLock()
	clients, localFound := h.clients[documentID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"document_id": documentID})
				close(client.Send)
				h.unregister <- client
			}
		}
	}

	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_document_id": documentID.String(),
			"message":            data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetDocumentID string          `json:"target_document_id"`
			Message          json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		did, err := uuid.Parse(payload.TargetDocumentID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[did]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					close(client.Send)
					h.unregister <- client
				}
			}
		}
	}
}
