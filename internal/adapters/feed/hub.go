package feed

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Taiyi-94/prun-universe-map/internal/application/tracking"
)

// Message is the JSON envelope pushed to renderer clients after every
// recomputation. The payload carries resolved facts only; all visual
// decisions belong to the renderer.
type Message struct {
	Type    string                    `json:"type"`
	Version string                    `json:"version"`
	Ships   []tracking.ShipDescriptor `json:"ships"`
}

// Client represents a single connected renderer
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte // Buffered channel of outbound messages
}

// Hub maintains the set of active clients and broadcasts descriptor sets
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 4),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run owns the client set. Must run in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Println("feed: renderer connected")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client: drop it rather than stall the feed.
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// BroadcastDescriptors pushes one enriched descriptor set to every client.
func (h *Hub) BroadcastDescriptors(version string, ships []tracking.ShipDescriptor) {
	payload, err := json.Marshal(Message{
		Type:    "ships_updated",
		Version: version,
		Ships:   ships,
	})
	if err != nil {
		log.Printf("feed: failed to marshal descriptors: %v", err)
		return
	}
	h.broadcast <- payload
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS handles websocket requests from renderer clients.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("feed: upgrade error: %v", err)
		return
	}
	client := &Client{hub: h, conn: conn, send: make(chan []byte, 256)}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump discards client input; the feed is one-way. It exists to detect
// closed connections.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}

	// Send close message if channel was closed
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
