package hub

import (
	"errors"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"

	"gigwork-chat-app/dto"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
	sendBufferSize = 64
)

var ErrClientGone = errors.New("client connection gone")

// Client is one live connection handle held by the hub. Abstracting the
// transport keeps the hub testable without a real websocket.
type Client interface {
	UserID() string
	Send(event dto.Envelope) error
	Close()
}

// WSClient adapts a fiber websocket connection to the Client interface. All
// writes go through a buffered channel drained by a single write pump, so the
// hub never blocks on a slow consumer.
type WSClient struct {
	userID string
	conn   *websocket.Conn
	send   chan dto.Envelope

	mu     sync.Mutex
	closed bool
}

func NewWSClient(userID string, conn *websocket.Conn) *WSClient {
	return &WSClient{
		userID: userID,
		conn:   conn,
		send:   make(chan dto.Envelope, sendBufferSize),
	}
}

func (c *WSClient) UserID() string { return c.userID }

// Send queues an event for delivery. A full buffer means the consumer has
// stalled past any reasonable backlog; report it gone rather than block.
func (c *WSClient) Send(event dto.Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientGone
	}
	select {
	case c.send <- event:
		return nil
	default:
		return ErrClientGone
	}
}

func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// ConfigureRead sets the read limits the connection goroutine relies on; the
// caller owns the read loop.
func (c *WSClient) ConfigureRead() {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
}

// Run drains the send channel into the connection, pinging to keep it alive.
// It returns when the channel is closed or a write fails.
func (c *WSClient) Run() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
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
