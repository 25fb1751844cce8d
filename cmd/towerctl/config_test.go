package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/towerctl/internal/registry"
)

func TestLoadServiceConfigDefaultsAndOverrides(t *testing.T) {
	cfg, err := loadServiceConfig("ex.config.toml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Capacity != 800 {
		t.Fatalf("unexpected capacity: %d", cfg.Capacity)
	}
	if cfg.MaxConnections != 400 {
		t.Fatalf("unexpected max connections: %d", cfg.MaxConnections)
	}
	if cfg.AdminAddr != "127.0.0.1:7020" {
		t.Fatalf("unexpected admin addr: %q", cfg.AdminAddr)
	}
	if cfg.ID != "" || cfg.Info != "" || cfg.MapperPort != "" {
		t.Fatalf("identity must not come from the file: %+v", cfg)
	}
}

func TestLoadServiceConfigEmptyFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Capacity != registry.DefaultCapacity {
		t.Fatalf("capacity default lost: %d", cfg.Capacity)
	}
}

func TestLoadServiceConfigRejectsBadLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("max_connections = -1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadServiceConfig(path); err == nil {
		t.Fatalf("expected error for negative max_connections")
	}
}
