package ws

import (
	"sync"

	"fooddelivery/internal/core/domain/model/user"
)

// Client is one observer connection. Outgoing messages are pre-encoded and
// queued on send; the write pump drains the queue.
type Client struct {
	user  user.User
	rooms []string
	send  chan []byte

	mu     sync.Mutex
	closed bool
}

func newClient(u user.User, rooms []string, buffer int) *Client {
	return &Client{
		user:  u,
		rooms: rooms,
		send:  make(chan []byte, buffer),
	}
}

func (c *Client) User() user.User {
	return c.user
}

func (c *Client) Rooms() []string {
	return append([]string(nil), c.rooms...)
}

// enqueue never blocks. It reports false when the queue is full or closed.
func (c *Client) enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// close is idempotent. The write pump sees the closed queue and ends the connection.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}
