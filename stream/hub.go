// Package stream fans tick snapshots out to websocket spectators.
package stream

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer = 64
	writeWait  = 5 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub broadcasts JSON messages to every connected spectator. A spectator that
// falls sendBuffer messages behind is dropped. New spectators immediately get
// the most recent message.
type Hub struct {
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte
	closed  bool
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Hub{
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:  make(map[*client]struct{}),
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast encodes v as JSON and queues it for every spectator.
func (h *Hub) Broadcast(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.last = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.log.Warn("dropping slow spectator", "remote", c.conn.RemoteAddr().String())
			h.removeLocked(c)
		}
	}
	return nil
}

// removeLocked must be called with mu held.
func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// ServeHTTP upgrades the request and registers the spectator.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- h.last
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Info("spectator connected", "remote", conn.RemoteAddr().String(), "clients", n)

	go h.writePump(c)
	go h.readPump(c)
}

// readPump discards inbound messages and unregisters on disconnect.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.mu.Lock()
		h.removeLocked(c)
		h.mu.Unlock()
		_ = c.conn.Close()
		h.log.Info("spectator disconnected", "remote", c.conn.RemoteAddr().String())
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

// Close disconnects every spectator and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}
