package dummy

import (
	"io"
	"net"
)

// Client replays the chunks it was initialised with, one per read-operation. After the
// chunks are exhausted, every read returns the terminating error, io.EOF by default.
// Everything written is kept in Written.
type Client struct {
	data    [][]byte
	pending []byte
	err     error
	Written []byte
	Closed  bool
}

func NewClient(data ...[]byte) *Client {
	return &Client{
		data: data,
		err:  io.EOF,
	}
}

// WithError replaces the error returned once the chunks are exhausted.
func (c *Client) WithError(err error) *Client {
	c.err = err
	return c
}

func (c *Client) Read(into []byte) (int, error) {
	if c.Closed {
		return 0, net.ErrClosed
	}

	if len(c.pending) == 0 {
		if len(c.data) == 0 {
			return 0, c.err
		}

		c.pending, c.data = c.data[0], c.data[1:]
	}

	n := copy(into, c.pending)
	c.pending = c.pending[n:]

	return n, nil
}

func (c *Client) Write(b []byte) error {
	c.Written = append(c.Written, b...)
	return nil
}

func (*Client) Remote() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 1}
}

func (c *Client) Close() error {
	c.Closed = true
	return nil
}
