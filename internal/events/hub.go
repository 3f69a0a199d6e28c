// Package events fans audit entries out to websocket subscribers.
package events

import (
	"context"
	"encoding/json"

	"github.com/lalith-99/propmaster/internal/models"
	"github.com/lalith-99/propmaster/internal/observ"
	"go.uber.org/zap"
)

type MessageType string

const (
	MessageTypeConnected MessageType = "connected"
	MessageTypeAudit     MessageType = "audit"
	MessageTypePong      MessageType = "pong"
	MessageTypeError     MessageType = "error"
)

type OutgoingMessage struct {
	Type MessageType `json:"type"`
	Data any         `json:"data"`
}

type IncomingMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Hub owns the subscriber set. All map access happens on the Run
// goroutine; everything else talks to it through channels.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves the hub until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			observ.ActivitySubscribers.Set(float64(len(h.clients)))
			h.logger.Debug("activity subscriber joined", zap.String("client", c.ID), zap.String("user", c.UserID))

		case c := <-h.unregister:
			if h.clients[c] {
				h.drop(c)
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// slow consumer
					h.logger.Warn("dropping activity subscriber with full buffer", zap.String("client", c.ID))
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.closed)
	observ.ActivitySubscribers.Set(float64(len(h.clients)))
}

// Publish queues entry for every subscriber. It never blocks: when the
// queue is full the entry is dropped and logged, so it is safe to call
// from inside a store commit.
func (h *Hub) Publish(entry models.AuditLogEntry) {
	data, err := json.Marshal(OutgoingMessage{Type: MessageTypeAudit, Data: entry})
	if err != nil {
		h.logger.Error("failed to encode audit entry", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("activity queue full, dropping entry", zap.String("action", entry.Action))
	}
}
