package protocol

import (
	"bufio"
	"net"
)

// Conn is one line-oriented duplex transport over an established socket.
// It is owned by a single handler or client; never shared.
type Conn struct {
	raw net.Conn
	r   *bufio.Reader
	w   *bufio.Writer
}

// NewConn wraps an accepted or dialed socket.
func NewConn(raw net.Conn) *Conn {
	return &Conn{
		raw: raw,
		r:   bufio.NewReader(raw),
		w:   bufio.NewWriter(raw),
	}
}

// Dial opens a line transport to a port on the local host.
func Dial(port string) (*Conn, error) {
	raw, err := net.Dial("tcp", net.JoinHostPort("127.0.0.1", port))
	if err != nil {
		return nil, err
	}
	return NewConn(raw), nil
}

// ReadLine blocks for the next line, returned with its terminator so callers
// can apply ValidMessage. A read error ends the session; partial trailing
// input is discarded with it.
func (c *Conn) ReadLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return line, nil
}

// WriteLine sends one line, appending the terminator, and flushes.
func (c *Conn) WriteLine(s string) error {
	if _, err := c.w.WriteString(s); err != nil {
		return err
	}
	if err := c.w.WriteByte('\n'); err != nil {
		return err
	}
	return c.w.Flush()
}

func (c *Conn) RemoteAddr() string {
	return c.raw.RemoteAddr().String()
}

func (c *Conn) Close() error {
	return c.raw.Close()
}
