package web

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer   = 64
	writeTimeout = 5 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = pongTimeout * 9 / 10
)

// client is one WebSocket viewer.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans frames out to clients. Its Run loop is the only goroutine that
// touches the client set; everything else talks to it over channels.
type Hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	count      atomic.Int64
}

// NewHub creates an idle hub. Call Run to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 256),
	}
}

// Run serves the hub until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return nil

		case c := <-h.register:
			h.clients[c] = true
			h.count.Add(1)

		case c := <-h.unregister:
			if h.clients[c] {
				h.drop(c)
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Too slow to keep up.
					h.drop(c)
				}
			}
		}
	}
}

// drop removes c and closes its send channel, which ends its writer.
func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.count.Add(-1)
}

// Broadcast queues a frame for every client. It never blocks the game
// loop: when the queue is full the frame is skipped.
func (h *Hub) Broadcast(msg []byte) bool {
	select {
	case h.broadcast <- msg:
		return true
	default:
		return false
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// attach registers conn and starts its reader and writer.
func (h *Hub) attach(ctx context.Context, conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-ctx.Done():
		conn.Close()
		return
	}
	go c.writer()
	go c.reader(ctx, h)
}

// reader drains incoming messages so control frames are processed and a
// closed connection is noticed. Viewers have nothing to say.
func (c *client) reader(ctx context.Context, h *Hub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-ctx.Done():
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	//nolint:errcheck // A failed deadline shows up as a read error
	c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writer sends queued frames and keeps the connection alive with pings.
func (c *client) writer() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			//nolint:errcheck // A failed deadline shows up as a write error
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				//nolint:errcheck // Best-effort close frame
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			//nolint:errcheck // A failed deadline shows up as a write error
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
