package tower

import (
	"net"
	"strings"
	"time"

	"github.com/danmuck/towerctl/internal/observability"
	"github.com/danmuck/towerctl/internal/protocol"
)

// handleConn runs one caller session. Invalid lines are dropped without a
// response; a terminal log command ends the session after the dump.
func (s *Service) handleConn(nc net.Conn) {
	conn := protocol.NewConn(nc)
	defer conn.Close()
	for {
		line, err := conn.ReadLine()
		if err != nil {
			return
		}
		if !protocol.ValidMessage(line) {
			continue
		}
		id := strings.TrimSuffix(line, "\n")
		if s.dispatch(conn, id) {
			return
		}
	}
}

// dispatch handles one valid identity line under the visit-log lock and
// reports whether the session is over. The scoped release covers the
// terminal path too, so a log dump never starves other handlers.
func (s *Service) dispatch(conn *protocol.Conn, id string) (terminal bool) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == protocol.TerminalKeyword {
		for _, e := range s.visits.Snapshot() {
			_ = conn.WriteLine(e.Key)
		}
		_ = conn.WriteLine(protocol.LogEndMarker)
		observability.RecordDispatch(s.cfg.ID, "log", time.Since(start))
		return true
	}

	_ = conn.WriteLine(s.cfg.Info)
	s.visits.InsertSorted(id, "")
	observability.RecordVisit(s.cfg.ID)
	observability.RecordDispatch(s.cfg.ID, "visit", time.Since(start))
	return false
}
