package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"nhooyr.io/websocket"

	"github.com/alhariq/mahkah/pkg/types"
)

// StoryEvent is one activity item broadcast to the festival ops screen.
// It carries classification only; story text and photos stay private.
type StoryEvent struct {
	Type        string            `json:"type"` // story_generated, story_rejected, story_failed
	VisitorType types.VisitorType `json:"visitorType"`
	Lang        types.Language    `json:"lang"`
	Code        types.ErrorCode   `json:"code,omitempty"`
}

// EventsHub manages WebSocket connections and broadcasts story events.
type EventsHub struct {
	clients    map[clientInterface]bool
	broadcast  chan interface{}
	register   chan clientInterface
	unregister chan clientInterface
	mu         sync.Mutex
	ctx        context.Context
	cancel     context.CancelFunc
}

// clientInterface allows for both real clients and mock clients.
type clientInterface interface {
	getSendChannel() chan []byte
	close()
}

// eventsClient represents one WebSocket connection.
type eventsClient struct {
	hub  *EventsHub
	conn *websocket.Conn
	send chan []byte
}

func (c *eventsClient) getSendChannel() chan []byte {
	return c.send
}

func (c *eventsClient) close() {
	if c.conn != nil {
		_ = c.conn.Close(websocket.StatusNormalClosure, "")
	}
}

// NewEventsHub creates a new events hub.
func NewEventsHub() *EventsHub {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventsHub{
		clients:    make(map[clientInterface]bool),
		broadcast:  make(chan interface{}, 256),
		register:   make(chan clientInterface),
		unregister: make(chan clientInterface),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run starts the hub's message processing loop.
func (h *EventsHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			log.Printf("events: client connected (total: %d)", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.getSendChannel())
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Printf("events: client disconnected (total: %d)", count)

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				log.Printf("events: failed to marshal message: %v", err)
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.getSendChannel() <- data:
				default:
					// Slow consumer; drop it.
					close(client.getSendChannel())
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()

		case <-h.ctx.Done():
			log.Println("events: hub stopping")
			return
		}
	}
}

// Stop gracefully shuts down the hub.
func (h *EventsHub) Stop() {
	h.cancel()

	h.mu.Lock()
	for client := range h.clients {
		close(client.getSendChannel())
		client.close()
	}
	h.clients = make(map[clientInterface]bool)
	h.mu.Unlock()
}

// Broadcast sends an event to all connected clients.
func (h *EventsHub) Broadcast(event interface{}) {
	select {
	case h.broadcast <- event:
	default:
		log.Println("events: broadcast channel full, dropping event")
	}
}

// Register adds a client to the hub.
func (h *EventsHub) Register(client clientInterface) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *EventsHub) Unregister(client clientInterface) {
	h.unregister <- client
}

// ServeHTTP handles WebSocket upgrade requests for /ws.
func (h *EventsHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("events: WebSocket upgrade failed: %v", err)
		return
	}

	client := &eventsClient{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.Register(client)

	go client.writePump()
	go client.readPump()
}

// writePump sends events to the WebSocket connection.
func (c *eventsClient) writePump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for message := range c.send {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := c.conn.Write(ctx, websocket.MessageText, message)
		cancel()
		if err != nil {
			log.Printf("events: write failed: %v", err)
			return
		}
	}
}

// readPump drains the connection to detect disconnections.
func (c *eventsClient) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		if _, _, err := c.conn.Read(context.Background()); err != nil {
			return
		}
	}
}

// MockClient is a mock hub client for testing.
type MockClient struct {
	SendChan chan []byte
}

func (m *MockClient) getSendChannel() chan []byte {
	return m.SendChan
}

func (m *MockClient) close() {}
