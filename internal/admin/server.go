// Package admin exposes an optional HTTP surface (health, readiness,
// metrics, and a role-specific state view) alongside the TCP protocol.
// It never participates in the wire protocol itself.
package admin

import (
	"net/http"
	"time"

	"github.com/danmuck/towerctl/internal/node"
	"github.com/danmuck/towerctl/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// StateFunc produces the role-specific state view served by the admin API.
type StateFunc func() any

// Server is one service's admin HTTP endpoint.
type Server struct {
	ID       string
	Role     string
	Addr     string
	Appeared time.Time

	router    *gin.Engine
	statePath string
	state     StateFunc
}

var _ node.Node = (*Server)(nil)

// New builds an admin server for one service instance.
func New(id, role, addr string, corsOrigins []string) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(id))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return &Server{
		ID:       id,
		Role:     role,
		Addr:     addr,
		Appeared: time.Now(),
		router:   r,
	}
}

func (s *Server) NodeID() string {
	return s.ID
}

func (s *Server) Kind() string {
	return s.Role
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

// ExposeState mounts a role-specific JSON view, e.g. /entries or /log.
func (s *Server) ExposeState(path string, fn StateFunc) {
	s.statePath = path
	s.state = fn
}

func (s *Server) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.ID,
			"role":    s.Role,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.ID,
			"role":    s.Role,
		})
	})

	if s.statePath != "" && s.state != nil {
		s.router.GET(s.statePath, func(c *gin.Context) {
			c.JSON(http.StatusOK, s.state())
		})
	}
}

// Serve runs the admin endpoint; callers launch it on its own goroutine.
func (s *Server) Serve() error {
	s.RegisterRoutes()
	log.Info().Str("service", s.ID).Str("addr", s.Addr).Msg("admin endpoint listening")
	return s.router.Run(s.Addr)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
