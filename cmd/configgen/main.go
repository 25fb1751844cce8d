package main

import (
	"flag"
	"log"

	"github.com/danmuck/towerctl/internal/config"
)

func main() {
	kind := flag.String("kind", "flight", "config kind: mapper|tower|flight")
	output := flag.String("output", "", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing flight plan")
	input := flag.String("input", "", "plan path for validation")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		if *kind != "flight" {
			log.Fatalf("validation only covers flight plans")
		}
		path := *input
		if path == "" {
			path = "cmd/flightctl/plan.toml"
		}
		if _, err := config.LoadFlightPlan(path); err != nil {
			log.Fatal(err)
		}
		log.Printf("Validated flight plan at %s", path)
		return
	}

	target := *output
	if target == "" {
		switch *kind {
		case "mapper":
			target = "cmd/mapctl/config.toml"
		case "tower":
			target = "cmd/towerctl/config.toml"
		case "flight":
			target = "cmd/flightctl/plan.toml"
		default:
			log.Fatalf("unknown kind: %s", *kind)
		}
	}

	if err := config.WriteTemplate(target, *kind, *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s config template to %s", *kind, target)
}
