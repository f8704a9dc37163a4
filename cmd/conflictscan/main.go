// Command conflictscan loads a scenario file, generates the auxiliary
// traffic, and reports the first separation conflict (if any) on the log.
// With -interactive the primary flight path is collected on the console
// instead of being read from the scenario file.
package main

import (
	"flag"
	"os"

	"github.com/labstack/gommon/log"

	"flightpath-sim/internal/entry"
	"flightpath-sim/internal/sim/conflict"
	"flightpath-sim/internal/sim/scenario"
	"flightpath-sim/internal/sim/trajectory"
	"flightpath-sim/pkg/types"
)

func main() {
	configPath := flag.String("config", "scenario.yaml", "path to the scenario file")
	interactive := flag.Bool("interactive", false, "enter the primary flight path on the console")
	flag.Parse()

	cfg, err := scenario.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	var primary *trajectory.Trajectory
	if *interactive {
		id := types.VehicleID(cfg.Primary.ID)
		if id == "" {
			id = "UAV1"
		}
		primary, err = entry.ReadTrajectory(os.Stdin, os.Stdout, id)
	} else {
		primary, err = cfg.Primary.Build()
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Primary %s: %d waypoints, t=[%.1f, %.1f], path length %.1f",
		primary.ID, len(primary.Waypoints()), primary.StartTime, primary.EndTime, primary.TotalLength())

	gen := scenario.NewGenerator(cfg.Traffic.Seed)
	others, err := gen.Spread(primary, cfg.Traffic.Count, cfg.Traffic.TimeJitter)
	if err != nil {
		log.Fatal(err)
	}

	rec, found := conflict.Detect(primary, others, cfg.Detection.BufferRadius, cfg.Detection.TimeStep)
	if !found {
		log.Printf("No conflict within radius %.1f (step %.2f)", cfg.Detection.BufferRadius, cfg.Detection.TimeStep)
		return
	}
	log.Printf("CONFLICT: %s and %s at t=%.2f, position (%.1f, %.1f, %.1f), separation %.2f",
		primary.ID, others[rec.OtherIndex].ID, rec.Time,
		rec.Location.X, rec.Location.Y, rec.Location.Z, rec.Distance)
}
