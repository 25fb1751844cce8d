package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/towerctl/internal/tower"
)

type fileConfig struct {
	Capacity       int      `toml:"capacity"`
	MaxConnections int      `toml:"max_connections"`
	AdminAddr      string   `toml:"admin_addr"`
	CorsOrigins    []string `toml:"cors_origins"`
}

// loadServiceConfig layers file values over defaults. Identity and mapper
// port stay on the command line; the file carries runtime limits only.
func loadServiceConfig(path string) (tower.ServiceConfig, error) {
	cfg := tower.DefaultServiceConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return tower.ServiceConfig{}, fmt.Errorf("load tower config: %w", err)
	}

	if meta.IsDefined("capacity") {
		if raw.Capacity <= 0 {
			return tower.ServiceConfig{}, fmt.Errorf("load tower config: capacity must be positive")
		}
		cfg.Capacity = raw.Capacity
	}

	if meta.IsDefined("max_connections") {
		if raw.MaxConnections <= 0 {
			return tower.ServiceConfig{}, fmt.Errorf("load tower config: max_connections must be positive")
		}
		cfg.MaxConnections = raw.MaxConnections
	}

	if meta.IsDefined("admin_addr") {
		cfg.AdminAddr = strings.TrimSpace(raw.AdminAddr)
	}

	if meta.IsDefined("cors_origins") {
		out := make([]string, 0, len(raw.CorsOrigins))
		for _, origin := range raw.CorsOrigins {
			v := strings.TrimSpace(origin)
			if v == "" {
				continue
			}
			out = append(out, v)
		}
		cfg.CorsOrigins = out
	}

	return cfg, nil
}
