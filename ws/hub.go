// Package ws fans domain events out to connected clients. Each entity type
// gets its own hub (topic), so menu-item subscribers never see order
// traffic. Delivery is best-effort and at-most-once: there is no replay
// buffer, and a reconnecting client must re-fetch full state.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"go-restaurant-backoffice/logger"
)

// Message is the wire envelope for every event on a topic.
type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// DeletedPayload is the payload for *:deleted events, which carry only the id.
type DeletedPayload struct {
	ID uint `json:"id"`
}

type Hub struct {
	topic    string
	upgrader websocket.Upgrader
	log      *logger.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewHub(topic string, log *logger.Logger) *Hub {
	return &Hub{
		topic: topic,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins
			},
		},
		log:     log.WithComponent("ws:" + topic),
		clients: make(map[*websocket.Conn]bool),
	}
}

// Handle upgrades the request and keeps the connection registered until the
// peer goes away. Inbound frames are drained and ignored; the channel is
// broadcast-only.
func (h *Hub) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.log.Warn("connection upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		h.mu.Lock()
		h.clients[conn] = true
		h.mu.Unlock()
		h.log.Info("client connected", "clients", h.ClientCount())

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.mu.Lock()
				delete(h.clients, conn)
				h.mu.Unlock()
				h.log.Info("client disconnected", "clients", h.ClientCount())
				break
			}
		}
	}
}

// Publish broadcasts an event to every connected client. It is
// fire-and-forget: failures are logged, dead connections evicted, and the
// triggering command is never affected. With no subscribers the event is
// simply dropped.
func (h *Hub) Publish(event string, payload interface{}) {
	messageBytes, err := json.Marshal(Message{Event: event, Payload: payload})
	if err != nil {
		h.log.Error("marshaling event failed", "event", event, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if err := client.WriteMessage(websocket.TextMessage, messageBytes); err != nil {
			h.log.Warn("writing to client failed, evicting", "event", event, "error", err)
			client.Close()
			delete(h.clients, client)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
