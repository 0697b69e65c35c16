package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Hub maintains active WebSocket connections and pushes live updates to them
type Hub struct {
	// Registered clients (userID -> Client)
	clients map[string]*Client

	// Outbound messages addressed to a user
	broadcast chan *Message

	register   chan *Client
	unregister chan *Client

	// Clients asking for a pong. Only Run sends on or closes a client's
	// send channel.
	pong chan *Client

	mu sync.RWMutex
}

// Message represents a message to deliver to a specific user
type Message struct {
	UserID string
	Data   interface{}
}

// Envelope is the wire shape of every pushed update
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		pong:       make(chan *Client, 64),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if old, ok := h.clients[client.UserID]; ok && old != client {
				// one live connection per user, newest wins
				close(old.send)
			}
			h.clients[client.UserID] = client
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
			log.Printf("✅ [WEBSOCKET] Client CONNECTED")
			log.Printf("   User ID: %s", client.UserID)
			log.Printf("   Total connected clients: %d", total)
			log.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

		case client := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.UserID]; ok && current == client {
				delete(h.clients, client.UserID)
				close(client.send)
				log.Printf("🔴 [WEBSOCKET] Client DISCONNECTED: %s (remaining: %d)", client.UserID, len(h.clients))
			}
			h.mu.Unlock()

		case client := <-h.pong:
			data, _ := json.Marshal(Envelope{Type: "pong", Data: time.Now().Format(time.RFC3339)})
			h.mu.Lock()
			if current, ok := h.clients[client.UserID]; ok && current == client {
				select {
				case client.send <- data:
				default:
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message.Data)
			if err != nil {
				log.Printf("❌ Failed to marshal message: %v", err)
				continue
			}

			h.mu.Lock()
			if client, ok := h.clients[message.UserID]; ok {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client.UserID)
					log.Printf("⚠️ Client buffer full, disconnecting: %s", message.UserID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToUser queues a typed update for a user. Updates for users without
// a live connection are dropped.
func (h *Hub) BroadcastToUser(userID, msgType string, data interface{}) {
	msg := &Message{UserID: userID, Data: Envelope{Type: msgType, Data: data}}
	select {
	case h.broadcast <- msg:
	default:
		log.Printf("⚠️ Broadcast queue full, dropping %s for %s", msgType, userID)
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// IsUserConnected checks if a user is currently connected
func (h *Hub) IsUserConnected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
