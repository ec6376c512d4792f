package tcp

import (
	"net"
	"time"
)

type Client interface {
	// Read reads into the passed buffer directly.
	Read(into []byte) (int, error)
	Write([]byte) error
	Remote() net.Addr
	Close() error
}

type client struct {
	conn    net.Conn
	timeout time.Duration
}

// NewClient wraps the connection. Zero timeout means reads never time out.
func NewClient(conn net.Conn, timeout time.Duration) Client {
	return &client{
		conn:    conn,
		timeout: timeout,
	}
}

func (c *client) Read(into []byte) (int, error) {
	if c.timeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return 0, err
		}
	}

	return c.conn.Read(into)
}

func (c *client) Write(b []byte) error {
	_, err := c.conn.Write(b)

	return err
}

func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *client) Close() error {
	return c.conn.Close()
}
