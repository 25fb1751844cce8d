package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/danmuck/towerctl/internal/config"
	"github.com/danmuck/towerctl/internal/flight"
	"github.com/danmuck/towerctl/internal/observability"
	"github.com/danmuck/towerctl/internal/protocol"
)

// Exit codes distinguish every failure class: configuration errors before
// any network activity, fatal resolution errors, and the non-fatal signal
// that at least one destination could not be contacted.
const (
	exitOK                = 0
	exitUsage             = 1
	exitInvalidMapperPort = 2
	exitMapperRequired    = 3
	exitMapperConnect     = 4
	exitNoMapEntry        = 5
	exitDestinationFailed = 6
)

// noMapperArg marks the mapper argument position as intentionally empty.
const noMapperArg = "-"

func main() {
	os.Exit(run())
}

func run() int {
	observability.InitLogger("flight")

	planPath := flag.String("plan", "", "TOML flight plan instead of positional arguments")
	flag.Usage = usage
	flag.Parse()

	plan, ok := buildPlan(*planPath, flag.Args())
	if !ok {
		return exitUsage
	}

	if plan.Mapper != "" && !protocol.ValidPort(plan.Mapper) {
		fmt.Fprintln(os.Stderr, "Invalid mapper port")
		return exitInvalidMapperPort
	}

	err := flight.Run(plan, os.Stdout)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flight.ErrInvalidMapperPort):
		fmt.Fprintln(os.Stderr, "Invalid mapper port")
		return exitInvalidMapperPort
	case errors.Is(err, flight.ErrMapperRequired):
		fmt.Fprintln(os.Stderr, "Mapper required")
		return exitMapperRequired
	case errors.Is(err, flight.ErrMapperUnreachable):
		fmt.Fprintln(os.Stderr, "Failed to connect to mapper")
		return exitMapperConnect
	case errors.Is(err, flight.ErrNoMapEntry):
		fmt.Fprintln(os.Stderr, "No map entry for destination")
		return exitNoMapEntry
	case errors.Is(err, flight.ErrDestinationFailed):
		fmt.Fprintln(os.Stderr, "Failed to connect to at least one destination")
		return exitDestinationFailed
	default:
		fmt.Fprintf(os.Stderr, "flightctl: %v\n", err)
		return exitUsage
	}
}

// buildPlan assembles the flight plan from a TOML file or positional
// arguments: id mapper {destinations}. The mapper position takes a port
// number or "-" for none.
func buildPlan(planPath string, args []string) (flight.Plan, bool) {
	if planPath != "" {
		if len(args) != 0 {
			usage()
			return flight.Plan{}, false
		}
		loaded, err := config.LoadFlightPlan(planPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "flightctl: %v\n", err)
			return flight.Plan{}, false
		}
		mapper := loaded.Mapper
		if mapper == noMapperArg {
			mapper = ""
		}
		return flight.Plan{ID: loaded.ID, Mapper: mapper, Destinations: loaded.Destinations}, true
	}

	if len(args) < 2 {
		usage()
		return flight.Plan{}, false
	}
	id := args[0]
	if id == "" || !protocol.ValidIdentifier(id) {
		usage()
		return flight.Plan{}, false
	}
	mapper := args[1]
	if mapper == noMapperArg {
		mapper = ""
	}
	return flight.Plan{ID: id, Mapper: mapper, Destinations: args[2:]}, true
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: flightctl [-plan path] id mapper {destinations}")
}
