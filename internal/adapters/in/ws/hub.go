// Package ws relays the change feed to connected dashboards and station
// screens over websockets. Each tenant gets its own room; events never
// cross tenants.
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is one websocket frame pushed to subscribers.
type Event struct {
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type tenantEvent struct {
	tenantID uuid.UUID
	event    Event
}

// Hub maintains the set of active clients and broadcasts committed events
// to them. It implements ports.EventPublisher so the composition root can
// fan the change feed out to both the broker and connected screens.
type Hub struct {
	rooms map[uuid.UUID]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan tenantEvent

	log *zap.Logger
	mu  sync.Mutex
}

// NewHub creates a hub; call Run in a goroutine before serving connections.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan tenantEvent, 256),
		log:        log,
	}
}

// Run is the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.tenantID] == nil {
				h.rooms[client.tenantID] = make(map[*Client]bool)
			}
			h.rooms[client.tenantID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.drop(client)
			h.mu.Unlock()

		case entry := <-h.broadcast:
			message, err := json.Marshal(entry.event)
			if err != nil {
				h.log.Error("websocket frame marshal failed",
					zap.String("event", entry.event.Name),
					zap.Error(err))
				continue
			}

			h.mu.Lock()
			for client := range h.rooms[entry.tenantID] {
				select {
				case client.send <- message:
				default:
					// Slow consumer, drop it rather than block the feed.
					h.drop(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// drop must be called with the mutex held.
func (h *Hub) drop(client *Client) {
	clients, ok := h.rooms[client.tenantID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.rooms, client.tenantID)
	}
}

// Publish implements ports.EventPublisher: each event is broadcast to the
// room of its tenant. Delivery is best effort.
func (h *Hub) Publish(_ context.Context, events ...kernel.DomainEvent) {
	for _, event := range events {
		h.broadcast <- tenantEvent{
			tenantID: event.TenantID().Bytes(),
			event: Event{
				Name:       event.EventName(),
				OccurredAt: event.OccurredAt(),
				Payload:    event,
			},
		}
	}
}
