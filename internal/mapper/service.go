package mapper

import (
	"io"
	"sync"

	"github.com/danmuck/towerctl/internal/admin"
	"github.com/danmuck/towerctl/internal/registry"
	"github.com/danmuck/towerctl/internal/server"
	"github.com/rs/zerolog/log"
)

// ServiceConfig configures one mapper process.
type ServiceConfig struct {
	NodeID         string
	Capacity       int
	MaxConnections int
	AdminAddr      string
	CorsOrigins    []string
}

// DefaultServiceConfig returns mapper runtime defaults.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		NodeID:         "mapper.local",
		Capacity:       registry.DefaultCapacity,
		MaxConnections: server.DefaultMaxConnections,
	}
}

// Service runs the mapper: an ordered name table shared by every connection
// handler, guarded by one process-wide lock.
type Service struct {
	cfg ServiceConfig

	mu    sync.Mutex
	names *registry.Table
}

func NewService(cfg ServiceConfig) *Service {
	return &Service{
		cfg:   cfg,
		names: registry.NewTable(cfg.Capacity),
	}
}

// Run binds an ephemeral port, announces it on stdout, and serves until the
// connection cap is reached.
func (s *Service) Run(stdout io.Writer) error {
	ln, err := server.Listen(s.cfg.NodeID, s.cfg.MaxConnections)
	if err != nil {
		return err
	}
	defer ln.Close()
	ln.Announce(stdout)
	log.Info().
		Str("node", s.cfg.NodeID).
		Str("port", ln.Port()).
		Msg("mapper listening")

	if s.cfg.AdminAddr != "" {
		srv := admin.New(s.cfg.NodeID, "mapper", s.cfg.AdminAddr, s.cfg.CorsOrigins)
		srv.ExposeState("/entries", s.entriesView)
		go func() {
			if err := srv.Serve(); err != nil {
				log.Error().Err(err).Msg("admin endpoint stopped")
			}
		}()
	}

	return ln.Serve(s.handleConn)
}

type entryView struct {
	Name string `json:"name"`
	Port string `json:"port"`
}

func (s *Service) entriesView() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.names.Snapshot()
	out := make([]entryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryView{Name: e.Key, Port: e.Value})
	}
	return out
}
