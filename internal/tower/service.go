package tower

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/danmuck/towerctl/internal/admin"
	"github.com/danmuck/towerctl/internal/protocol"
	"github.com/danmuck/towerctl/internal/registry"
	"github.com/danmuck/towerctl/internal/server"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidIdentity   = errors.New("tower: invalid char in id or info")
	ErrInvalidMapperPort = errors.New("tower: invalid mapper port")
)

// ServiceConfig configures one tower process.
type ServiceConfig struct {
	ID   string
	Info string

	// MapperPort is the mapper to register with at startup; empty means the
	// tower runs unregistered.
	MapperPort string

	Capacity       int
	MaxConnections int
	AdminAddr      string
	CorsOrigins    []string
}

// DefaultServiceConfig returns tower runtime defaults; identity fields are
// always caller-supplied.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Capacity:       registry.DefaultCapacity,
		MaxConnections: server.DefaultMaxConnections,
	}
}

// Service runs one tower: a visit log shared by every connection handler,
// guarded by one process-wide lock.
type Service struct {
	cfg ServiceConfig

	mu     sync.Mutex
	visits *registry.Table
}

func NewService(cfg ServiceConfig) *Service {
	return &Service{
		cfg:    cfg,
		visits: registry.NewTable(cfg.Capacity),
	}
}

// Run binds an ephemeral port, announces it on stdout, registers with the
// mapper when one is configured, and serves until the connection cap is
// reached. Registration failure is fatal.
func (s *Service) Run(stdout io.Writer) error {
	ln, err := server.Listen(s.cfg.ID, s.cfg.MaxConnections)
	if err != nil {
		return err
	}
	defer ln.Close()
	ln.Announce(stdout)
	log.Info().
		Str("tower", s.cfg.ID).
		Str("port", ln.Port()).
		Str("info", s.cfg.Info).
		Msg("tower listening")

	if s.cfg.MapperPort != "" {
		if err := s.register(ln.Port()); err != nil {
			return err
		}
		log.Info().
			Str("tower", s.cfg.ID).
			Str("mapper_port", s.cfg.MapperPort).
			Msg("registered with mapper")
	}

	if s.cfg.AdminAddr != "" {
		srv := admin.New(s.cfg.ID, "tower", s.cfg.AdminAddr, s.cfg.CorsOrigins)
		srv.ExposeState("/log", s.logView)
		go func() {
			if err := srv.Serve(); err != nil {
				log.Error().Err(err).Msg("admin endpoint stopped")
			}
		}()
	}

	return ln.Serve(s.handleConn)
}

func (s *Service) logView() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.visits.Snapshot()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key)
	}
	return out
}

// Validate enforces identifier rules on the configured identity and mapper
// port syntax before any network activity.
func (c ServiceConfig) Validate() error {
	if !protocol.ValidIdentifier(c.ID) || !protocol.ValidIdentifier(c.Info) {
		return ErrInvalidIdentity
	}
	if c.MapperPort != "" && !protocol.ValidPort(c.MapperPort) {
		return fmt.Errorf("%w: %q", ErrInvalidMapperPort, c.MapperPort)
	}
	return nil
}
