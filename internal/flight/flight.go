package flight

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/danmuck/towerctl/internal/protocol"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidMapperPort = errors.New("flight: invalid mapper port")
	ErrMapperRequired    = errors.New("flight: mapper required")
	ErrMapperUnreachable = errors.New("flight: failed to connect to mapper")
	ErrNoMapEntry        = errors.New("flight: no map entry for destination")
	ErrDestinationFailed = errors.New("flight: failed to connect to at least one destination")
)

// Plan is one flight's itinerary. Mapper is a port number, or empty when no
// mapper is available; Destinations mix tower names and literal ports.
type Plan struct {
	ID           string
	Mapper       string
	Destinations []string
}

// Run resolves the plan's destinations, visits each one in order, and writes
// the report to out. The returned error, if any, is one of this package's
// sentinels; ErrDestinationFailed still follows a full report.
func Run(plan Plan, out io.Writer) error {
	dests := slices.Clone(plan.Destinations)

	if plan.Mapper == "" {
		for _, d := range dests {
			if !protocol.ValidPort(d) {
				return fmt.Errorf("%w: destination %q is not a port", ErrMapperRequired, d)
			}
		}
	} else {
		if !protocol.ValidPort(plan.Mapper) {
			return fmt.Errorf("%w: %q", ErrInvalidMapperPort, plan.Mapper)
		}
		if err := resolve(dests, plan.Mapper); err != nil {
			return err
		}
	}

	report, failed := visit(plan.ID, dests)
	for _, line := range report {
		fmt.Fprintln(out, line)
	}
	if failed {
		return ErrDestinationFailed
	}
	return nil
}

// resolve replaces every non-port destination in place with the port the
// mapper returns for it. One mapper connection serves the whole pass, opened
// even when nothing needs resolving. Any failure here poisons the full
// destination list, so all of them abort the run.
func resolve(dests []string, mapperPort string) error {
	conn, err := protocol.Dial(mapperPort)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMapperUnreachable, err)
	}
	defer conn.Close()

	for i, dest := range dests {
		if protocol.ValidPort(dest) {
			continue
		}
		if err := conn.WriteLine(protocol.QueryLine(dest)); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrNoMapEntry, dest, err)
		}
		line, err := conn.ReadLine()
		if err != nil || !protocol.ValidMessage(line) {
			return fmt.Errorf("%w: %s", ErrNoMapEntry, dest)
		}
		port := strings.TrimSuffix(line, "\n")
		if port == protocol.NotFoundMarker {
			return fmt.Errorf("%w: %s", ErrNoMapEntry, dest)
		}
		// whatever else the mapper returned is trusted as a port
		dests[i] = port
		log.Debug().Str("destination", dest).Str("port", port).Msg("destination resolved")
	}
	return nil
}

// visit contacts each destination in order, independently: a failure flags
// the run and moves on, it never aborts the remaining destinations.
func visit(id string, dests []string) (report []string, failed bool) {
	report = make([]string, 0, len(dests))
	for _, port := range dests {
		info, err := visitOne(id, port)
		if err != nil {
			log.Warn().Str("port", port).Err(err).Msg("destination failed")
			failed = true
			continue
		}
		report = append(report, info)
	}
	return report, failed
}

// visitOne performs one identity/info exchange with a tower.
func visitOne(id, port string) (string, error) {
	conn, err := protocol.Dial(port)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if err := conn.WriteLine(id); err != nil {
		return "", err
	}
	line, err := conn.ReadLine()
	if err != nil {
		return "", err
	}
	if !protocol.ValidMessage(line) {
		return "", fmt.Errorf("flight: invalid response from %s", port)
	}
	return strings.TrimSuffix(line, "\n"), nil
}
