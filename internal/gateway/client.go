package gateway

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a frame to the peer
	writeWait = 10 * time.Second

	// Time allowed between pongs before the read side gives up
	pongWait = 60 * time.Second

	// Ping interval, must be shorter than pongWait
	pingPeriod = 54 * time.Second

	// Maximum inbound frame size
	maxMessageSize = 4096

	// Buffer size for outbound frames
	sendBufferSize = 256
)

// Client owns the write side of one websocket connection. Frames are queued
// on a buffered channel and drained by writePump so that a stalled peer never
// blocks a broadcast or the registry.
type Client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	closed sync.Once
	logger *slog.Logger
}

func newClient(id string, conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		id:     id,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
		logger: logger.With(slog.String("connection_id", id)),
	}
}

// trySend queues a frame without blocking. It reports false when the buffer
// is full or the client is shut down; the send channel is never closed, so a
// frame queued against a dying client is simply abandoned.
func (c *Client) trySend(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// shutdown terminates the transport and stops the write pump. Safe to call
// from any goroutine, any number of times.
func (c *Client) shutdown() {
	c.closed.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// writePump drains the send channel onto the socket and keeps the connection
// alive with pings. It exits on write failure or shutdown; either way the
// transport ends up closed.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.shutdown()
	}()

	for {
		select {
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Debug("gateway write failed", slog.String("error", err.Error()))
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
