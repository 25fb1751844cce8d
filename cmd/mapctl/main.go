package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danmuck/towerctl/internal/mapper"
	"github.com/danmuck/towerctl/internal/observability"
	"github.com/rs/zerolog/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	observability.InitLogger("mapper")

	configPath := flag.String("config", "", "optional TOML config file")
	adminAddr := flag.String("admin", "", "optional admin HTTP listen address")
	capacity := flag.Int("capacity", 0, "maximum registered names (0 = default)")
	maxConns := flag.Int("maxconns", 0, "connections handled per process lifetime (0 = default)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 0 {
		usage()
		return 1
	}

	cfg := mapper.DefaultServiceConfig()
	if *configPath != "" {
		loaded, err := loadServiceConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mapctl: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	if *adminAddr != "" {
		cfg.AdminAddr = *adminAddr
	}
	if *capacity > 0 {
		cfg.Capacity = *capacity
	}
	if *maxConns > 0 {
		cfg.MaxConnections = *maxConns
	}

	svc := mapper.NewService(cfg)
	if err := svc.Run(os.Stdout); err != nil {
		log.Error().Err(err).Msg("mapper stopped")
		fmt.Fprintf(os.Stderr, "mapctl: %v\n", err)
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: mapctl [-config path] [-admin addr] [-capacity n] [-maxconns n]")
}
