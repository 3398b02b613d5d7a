package live

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"pitplan/internal/planner"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Hub fans prediction updates out to the clients watching each cook
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]bool
}

// client maintains one WebSocket connection with a watcher
type client struct {
	conn   *websocket.Conn
	send   chan []byte
	hub    *Hub
	cookID string
}

// Update is the payload pushed to watchers when a new reading arrives
type Update struct {
	CookID        string                   `json:"cook_id"`
	InternalTempF float64                  `json:"internal_temp_f"`
	Prediction    planner.PredictionUpdate `json:"prediction"`
	RecordedAt    time.Time                `json:"recorded_at"`
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*client]bool)}
}

// HandleWebSocket upgrades the request and registers the watcher for the
// cook named in the route
func (h *Hub) HandleWebSocket(c *gin.Context) {
	cookID := c.Param("id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	cl := &client{
		conn:   conn,
		send:   make(chan []byte, 256),
		hub:    h,
		cookID: cookID,
	}
	h.register(cl)

	go cl.writePump()
	go cl.readPump()
}

// Broadcast pushes an update to every watcher of the cook
func (h *Hub) Broadcast(update Update) {
	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling update: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.clients[update.CookID] {
		select {
		case cl.send <- data:
		default:
			log.Println("WebSocket buffer full, dropping update")
		}
	}
}

// WatcherCount returns the number of clients watching a cook
func (h *Hub) WatcherCount(cookID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[cookID])
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[cl.cookID] == nil {
		h.clients[cl.cookID] = make(map[*client]bool)
	}
	h.clients[cl.cookID][cl] = true
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if watchers, ok := h.clients[cl.cookID]; ok {
		delete(watchers, cl)
		if len(watchers) == 0 {
			delete(h.clients, cl.cookID)
		}
	}
}

// readPump drains incoming frames; watchers are read-only but the pump
// keeps pong handling and connection teardown in one place
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps updates from the hub to the WebSocket connection
func (c *client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
