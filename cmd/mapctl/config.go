package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/towerctl/internal/mapper"
)

type fileConfig struct {
	NodeID         string   `toml:"node_id"`
	Capacity       int      `toml:"capacity"`
	MaxConnections int      `toml:"max_connections"`
	AdminAddr      string   `toml:"admin_addr"`
	CorsOrigins    []string `toml:"cors_origins"`
}

func loadServiceConfig(path string) (mapper.ServiceConfig, error) {
	cfg := mapper.DefaultServiceConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return mapper.ServiceConfig{}, fmt.Errorf("load mapper config: %w", err)
	}

	if meta.IsDefined("node_id") {
		id := strings.TrimSpace(raw.NodeID)
		if id != "" {
			cfg.NodeID = id
		}
	}

	if meta.IsDefined("capacity") {
		if raw.Capacity <= 0 {
			return mapper.ServiceConfig{}, fmt.Errorf("load mapper config: capacity must be positive")
		}
		cfg.Capacity = raw.Capacity
	}

	if meta.IsDefined("max_connections") {
		if raw.MaxConnections <= 0 {
			return mapper.ServiceConfig{}, fmt.Errorf("load mapper config: max_connections must be positive")
		}
		cfg.MaxConnections = raw.MaxConnections
	}

	if meta.IsDefined("admin_addr") {
		cfg.AdminAddr = strings.TrimSpace(raw.AdminAddr)
	}

	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = normalizeOrigins(raw.CorsOrigins)
	}

	return cfg, nil
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
