// Package server owns the listening socket lifecycle shared by the mapper
// and tower services: bind an ephemeral port, announce it, accept, and hand
// each connection to its own goroutine.
package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/danmuck/towerctl/internal/observability"
	"github.com/rs/zerolog/log"
)

// DefaultMaxConnections caps connections handled over one process lifetime.
const DefaultMaxConnections = 1000

// Listener is one bound TCP socket plus its accept-loop contract.
type Listener struct {
	node     string
	ln       net.Listener
	maxConns int
}

// Listen binds an OS-assigned port on the local host. A non-positive
// maxConns selects DefaultMaxConnections.
func Listen(node string, maxConns int) (*Listener, error) {
	if maxConns <= 0 {
		maxConns = DefaultMaxConnections
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("server: listen: %w", err)
	}
	return &Listener{node: node, ln: ln, maxConns: maxConns}, nil
}

// Port returns the bound port number as text.
func (l *Listener) Port() string {
	addr := l.ln.Addr().(*net.TCPAddr)
	return strconv.Itoa(addr.Port)
}

// Announce writes the bound port as a single line. Callers announce on
// stdout immediately after binding, before the first Accept.
func (l *Listener) Announce(w io.Writer) {
	fmt.Fprintln(w, l.Port())
}

// Serve accepts connections until the listener closes or the per-process
// connection cap is reached, spawning one handler goroutine per connection.
// It never waits on a handler; ownership of a connection transfers at
// hand-off and each handler closes its own transport. Transient accept
// failures are logged and skipped.
func (l *Listener) Serve(handle func(net.Conn)) error {
	for i := 0; i < l.maxConns; i++ {
		conn, err := l.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			observability.RecordAcceptError(l.node)
			log.Warn().Str("node", l.node).Err(err).Msg("accept failed")
			continue
		}
		observability.RecordConnection(l.node)
		log.Debug().
			Str("node", l.node).
			Str("remote", conn.RemoteAddr().String()).
			Msg("connection accepted")
		go handle(conn)
	}
	log.Info().Str("node", l.node).Int("max_connections", l.maxConns).Msg("connection cap reached")
	return nil
}

func (l *Listener) Close() error {
	return l.ln.Close()
}
