package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/danmuck/towerctl/internal/protocol"
	"github.com/pelletier/go-toml/v2"
)

// FlightPlan is the file form of one flightctl run: the flight's identity,
// an optional mapper port ("-" or empty for none), and its destinations in
// visiting order.
type FlightPlan struct {
	ID           string   `toml:"id"`
	Mapper       string   `toml:"mapper"`
	Destinations []string `toml:"destinations"`
}

// LoadFlightPlan reads and validates a TOML flight plan.
func LoadFlightPlan(path string) (FlightPlan, error) {
	var plan FlightPlan
	if err := loadToml(path, &plan); err != nil {
		return FlightPlan{}, err
	}
	plan.ID = strings.TrimSpace(plan.ID)
	plan.Mapper = strings.TrimSpace(plan.Mapper)
	for i := range plan.Destinations {
		plan.Destinations[i] = strings.TrimSpace(plan.Destinations[i])
	}
	if err := ValidateFlightPlan(plan); err != nil {
		return FlightPlan{}, err
	}
	return plan, nil
}

// ValidateFlightPlan enforces identifier rules on the plan's fields. Mapper
// port syntax and destination reachability stay with the orchestrator.
func ValidateFlightPlan(plan FlightPlan) error {
	if plan.ID == "" {
		return fmt.Errorf("flight plan: id is required")
	}
	if !protocol.ValidIdentifier(plan.ID) {
		return fmt.Errorf("flight plan: invalid char in id %q", plan.ID)
	}
	for i, dest := range plan.Destinations {
		if strings.TrimSpace(dest) == "" {
			return fmt.Errorf("flight plan: destinations[%d] is empty", i)
		}
		if !protocol.ValidIdentifier(dest) {
			return fmt.Errorf("flight plan: invalid char in destinations[%d] %q", i, dest)
		}
	}
	return nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
