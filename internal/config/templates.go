package config

import (
	"fmt"
	"os"
)

// Template returns the starter TOML for one config kind.
func Template(kind string) (string, error) {
	switch kind {
	case "mapper":
		return mapperTemplate, nil
	case "tower":
		return towerTemplate, nil
	case "flight":
		return flightTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

// WriteTemplate writes the starter TOML for kind to path, refusing to
// clobber an existing file unless overwrite is set.
func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const mapperTemplate = `node_id = "mapper.local"
capacity = 1000
max_connections = 1000
admin_addr = "127.0.0.1:7010"
cors_origins = ["http://localhost:3000"]
`

const towerTemplate = `capacity = 1000
max_connections = 1000
admin_addr = "127.0.0.1:7020"
cors_origins = ["http://localhost:3000"]
`

const flightTemplate = `id = "NZ123"
mapper = "4000"
destinations = ["ZQN", "AKL"]
`
