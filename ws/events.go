package ws

import (
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// writeWait bounds how long one slow client can hold up fan-out.
const writeWait = 10 * time.Second

// Event tells a client that a table changed; the client refetches that
// collection. No diffs are sent, so a subscriber always converges to the
// backend's current state.
type Event struct {
	Table string    `json:"table"`
	At    time.Time `json:"at"`
}

// Subscription registers one connection for a set of tables.
type Subscription struct {
	Conn   *websocket.Conn
	Tables []string
}

// EventHub fans table-change events out to subscribed connections.
type EventHub struct {
	clients    map[string]map[*websocket.Conn]bool // table -> set of clients
	broadcast  chan Event
	register   chan Subscription
	unregister chan Subscription
	mu         sync.Mutex
}

func NewEventHub() *EventHub {
	return &EventHub{
		clients:    make(map[string]map[*websocket.Conn]bool),
		broadcast:  make(chan Event, 16),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
	}
}

// Run handles register/unregister/broadcast until the process exits.
func (h *EventHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			for _, table := range sub.Tables {
				if h.clients[table] == nil {
					h.clients[table] = make(map[*websocket.Conn]bool)
				}
				h.clients[table][sub.Conn] = true
			}
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			for _, table := range sub.Tables {
				if _, ok := h.clients[table][sub.Conn]; ok {
					delete(h.clients[table], sub.Conn)
				}
			}
			h.mu.Unlock()
			sub.Conn.Close()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[ev.Table] {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[ev.Table], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Notify queues a change event for a table. Implements
// services.ChangeNotifier.
func (h *EventHub) Notify(table string) {
	select {
	case h.broadcast <- Event{Table: table, At: time.Now()}:
	default:
		log.Printf("ws broadcast queue full, dropping %s event", table)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades GET /ws/events?tables=orders,menu_items.
// Auth middleware runs before this, so only logged-in users subscribe.
func (h *EventHub) HandleWebSocket(c *gin.Context) {
	tablesParam := c.Query("tables")
	if tablesParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "tables query param required"})
		return
	}
	tables := strings.Split(tablesParam, ",")
	for i := range tables {
		tables[i] = strings.TrimSpace(tables[i])
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := Subscription{Conn: conn, Tables: tables}
	h.register <- sub

	// read loop exists only to notice the client going away
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.unregister <- sub
				return
			}
		}
	}()
}
