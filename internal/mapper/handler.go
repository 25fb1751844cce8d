package mapper

import (
	"net"
	"strings"
	"time"

	"github.com/danmuck/towerctl/internal/observability"
	"github.com/danmuck/towerctl/internal/protocol"
	"github.com/rs/zerolog/log"
)

// handleConn runs one client session: read a line, dispatch, repeat until
// the peer disconnects. The handler owns its transport.
func (s *Service) handleConn(nc net.Conn) {
	conn := protocol.NewConn(nc)
	defer conn.Close()
	for {
		line, err := conn.ReadLine()
		if err != nil {
			return
		}
		s.dispatch(conn, line)
	}
}

// dispatch processes one request line. The whole command, response emission
// included, runs under the table lock so listings and registrations are
// atomic with respect to concurrent handlers.
func (s *Service) dispatch(conn *protocol.Conn, line string) {
	if len(line) > protocol.MaxLineLen {
		return
	}
	msg := strings.TrimSuffix(line, "\n")
	if msg == "" {
		return
	}

	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case msg[0] == protocol.QueryMarker:
		name := msg[1:]
		if name == "" {
			return
		}
		port, found := s.names.Lookup(name)
		observability.RecordLookup(s.cfg.NodeID, found)
		if !found {
			port = protocol.NotFoundMarker
		}
		_ = conn.WriteLine(port)
		observability.RecordDispatch(s.cfg.NodeID, "query", time.Since(start))

	case msg[0] == protocol.RegisterMarker:
		body := msg[1:]
		if body == "" {
			return
		}
		s.register(body)
		observability.RecordDispatch(s.cfg.NodeID, "register", time.Since(start))

	case msg == protocol.ListCommand:
		for _, e := range s.names.Snapshot() {
			_ = conn.WriteLine(protocol.EntryLine(e.Key, e.Value))
		}
		observability.RecordDispatch(s.cfg.NodeID, "list", time.Since(start))
	}
}

// register applies one registration body. Rejections are silent on the wire;
// nothing is ever written back for a registration.
func (s *Service) register(body string) {
	name, port, ok := protocol.ParseRegistration(body)
	if !ok {
		observability.RecordRegistration(s.cfg.NodeID, false)
		return
	}
	inserted := s.names.InsertUnique(name, port)
	observability.RecordRegistration(s.cfg.NodeID, inserted)
	if inserted {
		log.Debug().
			Str("node", s.cfg.NodeID).
			Str("name", name).
			Str("port", port).
			Msg("name registered")
	}
}
