package refresh

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"debtledger/internal/domain/client"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

const EventRefresh = "refresh"

// WSEvent is pushed to viewers after every committed ledger mutation
type WSEvent struct {
	Type   string        `json:"type"`
	Action client.Action `json:"action"`
	Name   string        `json:"name"`
}

// connection represents a single WebSocket viewer
type connection struct {
	id   uint64
	conn *websocket.Conn
	send chan []byte
}

// Hub fans refresh events out to every connected viewer
type Hub struct {
	mu          sync.RWMutex
	connections map[uint64]*connection
	nextID      atomic.Uint64
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[uint64]*connection),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c.id] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.id]; ok && existing == c {
		delete(h.connections, c.id)
		close(c.send)
	}
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Notify broadcasts ev. It matches client.RefreshFunc.
func (h *Hub) Notify(_ context.Context, ev client.Event) {
	data, err := json.Marshal(&WSEvent{Type: EventRefresh, Action: ev.Action, Name: ev.Name})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.connections {
		select {
		case c.send <- data:
		default:
			// viewer too slow, it will resync on the next event
		}
	}
}

// ServeWS registers conn and blocks until the viewer disconnects
func (h *Hub) ServeWS(conn *websocket.Conn) {
	c := &connection{
		id:   h.nextID.Add(1),
		conn: conn,
		send: make(chan []byte, 64),
	}
	h.register(c)
	log.Printf("refresh_ws connected id=%d viewers=%d", c.id, h.Count())

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
		log.Printf("refresh_ws disconnected id=%d", c.id)
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// viewers only listen; reading keeps pong handling and close detection alive
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("refresh_ws read error id=%d: %v", c.id, err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
