package web

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"securehome/server/internal/interfaces"
)

// Client represents a WebSocket client connection
type Client struct {
	ID     string
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *EventHub
	mu     sync.Mutex
	closed bool
}

// EventHub manages WebSocket connections and broadcasts security events to
// every connected dashboard.
type EventHub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan interfaces.SecurityEvent
	mu         sync.RWMutex
}

// NewEventHub creates a new event hub
func NewEventHub() *EventHub {
	return &EventHub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client, 100),
		unregister: make(chan *Client, 100),
		broadcast:  make(chan interfaces.SecurityEvent, 1000),
	}
}

// Run starts the hub's event loop
func (h *EventHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// registerClient adds a new client to the hub
func (h *EventHub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client
	log.Printf("[Hub] Client connected: %s (total: %d)", client.ID, len(h.clients))

	go client.writePump()
}

// unregisterClient removes a client from the hub
func (h *EventHub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		close(client.Send)
		log.Printf("[Hub] Client disconnected: %s (total: %d)", client.ID, len(h.clients))
	}
}

// broadcastEvent sends a security event to all connected clients
func (h *EventHub) broadcastEvent(event interfaces.SecurityEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := json.Marshal(map[string]interface{}{
		"type": "event",
		"data": event,
		"time": time.Now().Unix(),
	})
	if err != nil {
		log.Printf("[Hub] Failed to marshal event: %v", err)
		return
	}

	for _, client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Client send buffer full, skip
			log.Printf("[Hub] Client send buffer full: %s", client.ID)
		}
	}
}

// Broadcast sends a security event to all connected clients (public method)
func (h *EventHub) Broadcast(event interfaces.SecurityEvent) {
	select {
	case h.broadcast <- event:
	default:
		log.Printf("[Hub] Broadcast channel full, dropping event")
	}
}

// GetClientCount returns the number of connected clients
func (h *EventHub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.mu.Lock()
			if !ok {
				// Hub closed the channel
				c.closed = true
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				c.mu.Unlock()
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[Client] Error writing to %s: %v", c.ID, err)
				c.closed = true
				c.mu.Unlock()
				return
			}
			c.mu.Unlock()

		case <-ticker.C:
			c.mu.Lock()
			if c.closed {
				c.mu.Unlock()
				return
			}

			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[Client] Error sending ping to %s: %v", c.ID, err)
				c.closed = true
				c.mu.Unlock()
				return
			}
			c.mu.Unlock()
		}
	}
}

// Close closes the client connection
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	c.Conn.Close()
}

// readPump pumps control messages from the WebSocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Client] Unexpected close from %s: %v", c.ID, err)
			}
			break
		}
	}
}
