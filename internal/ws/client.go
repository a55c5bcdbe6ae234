package ws

import "sync"

// Conn is the part of a websocket connection a Client writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// DefaultSendBuffer is the number of messages a Client queues before it is
// considered too slow and dropped.
const DefaultSendBuffer = 16

// Client owns the write side of one connection. Messages are queued with
// Send and written in order by Run, the connection's only writer.
type Client struct {
	conn    Conn
	send    chan Message
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func NewClient(conn Conn, buffer int) *Client {
	if buffer <= 0 {
		buffer = DefaultSendBuffer
	}
	return &Client{
		conn:    conn,
		send:    make(chan Message, buffer),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Send queues msg without blocking. It reports false when the client is
// closed or its queue is full.
func (c *Client) Send(msg Message) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// Run writes queued messages until the client is closed or a write fails.
func (c *Client) Run() error {
	defer close(c.stopped)
	for {
		select {
		case <-c.done:
			return nil
		case msg := <-c.send:
			if err := c.conn.WriteJSON(msg); err != nil {
				c.Close()
				return err
			}
		}
	}
}

// Close stops Run and closes the connection. It is safe to call more than
// once.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Wait blocks until Run has returned.
func (c *Client) Wait() {
	<-c.stopped
}

func (c *Client) Done() <-chan struct{} {
	return c.done
}
