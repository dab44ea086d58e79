package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"votebot/entity"
)

// Event represents a WebSocket event sent to dashboard clients.
type Event struct {
	Type string `json:"type"` // "new_message", "conversation_closed"
	Data any    `json:"data"`
}

// Hub maintains the set of active WebSocket clients and broadcasts the
// message traffic flowing through the bot to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        *slog.Logger
}

// NewHub creates a new Hub instance.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run starts the hub's event loop. Should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// MessageStored implements convo.MessageListener: every message the engine
// persists is fanned out to connected dashboards.
func (h *Hub) MessageStored(msg *entity.Message) {
	h.broadcast <- &Event{
		Type: "new_message",
		Data: msg,
	}
}

// BroadcastConversationClosed notifies dashboards a dialogue ended.
func (h *Hub) BroadcastConversationClosed(conversationID string) {
	h.broadcast <- &Event{
		Type: "conversation_closed",
		Data: map[string]string{"conversation_id": conversationID},
	}
}
