package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/danmuck/towerctl/internal/observability"
	"github.com/danmuck/towerctl/internal/protocol"
	"github.com/danmuck/towerctl/internal/tower"
	"github.com/rs/zerolog/log"
)

// Exit codes follow the service's startup error taxonomy: configuration
// problems are fatal before any network activity, each with its own code.
const (
	exitOK            = 0
	exitUsage         = 1
	exitInvalidChar   = 2
	exitInvalidPort   = 3
	exitMapperConnect = 4
)

func main() {
	os.Exit(run())
}

func run() int {
	observability.InitLogger("tower")

	configPath := flag.String("config", "", "optional TOML config file")
	adminAddr := flag.String("admin", "", "optional admin HTTP listen address")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 || len(args) > 3 {
		usage()
		return exitUsage
	}

	cfg := tower.DefaultServiceConfig()
	if *configPath != "" {
		loaded, err := loadServiceConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "towerctl: %v\n", err)
			return exitUsage
		}
		cfg = loaded
	}
	cfg.ID = args[0]
	cfg.Info = args[1]
	if len(args) == 3 {
		cfg.MapperPort = args[2]
	}
	if *adminAddr != "" {
		cfg.AdminAddr = *adminAddr
	}

	if !protocol.ValidIdentifier(cfg.ID) || !protocol.ValidIdentifier(cfg.Info) {
		fmt.Fprintln(os.Stderr, "Invalid char in parameter")
		return exitInvalidChar
	}
	if cfg.MapperPort != "" && !protocol.ValidPort(cfg.MapperPort) {
		fmt.Fprintln(os.Stderr, "Invalid port")
		return exitInvalidPort
	}

	svc := tower.NewService(cfg)
	if err := svc.Run(os.Stdout); err != nil {
		log.Error().Err(err).Msg("tower stopped")
		if errors.Is(err, tower.ErrMapperUnreachable) {
			fmt.Fprintln(os.Stderr, "Can not connect to map")
			return exitMapperConnect
		}
		fmt.Fprintf(os.Stderr, "towerctl: %v\n", err)
		return exitUsage
	}
	return exitOK
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: towerctl [-config path] [-admin addr] id info [mapper]")
}
