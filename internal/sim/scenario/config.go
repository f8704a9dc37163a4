package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"flightpath-sim/internal/sim/trajectory"
	"flightpath-sim/pkg/types"
)

type WaypointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type TrajectoryConfig struct {
	ID        string           `yaml:"id"`
	StartTime float64          `yaml:"start_time"`
	EndTime   float64          `yaml:"end_time"`
	Waypoints []WaypointConfig `yaml:"waypoints"`
}

type TrafficConfig struct {
	Count      int     `yaml:"count"`
	Seed       int64   `yaml:"seed"`
	TimeJitter float64 `yaml:"time_jitter"`
}

type DetectionConfig struct {
	BufferRadius float64 `yaml:"buffer_radius"`
	TimeStep     float64 `yaml:"time_step"`
}

// Config is the top-level structure of a scenario file.
type Config struct {
	Primary   TrajectoryConfig `yaml:"primary"`
	Traffic   TrafficConfig    `yaml:"traffic"`
	Detection DetectionConfig  `yaml:"detection"`
}

// LoadConfig reads and parses a scenario file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario config: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse scenario config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Detection.BufferRadius <= 0 {
		return fmt.Errorf("detection.buffer_radius must be positive, got %g", c.Detection.BufferRadius)
	}
	if c.Detection.TimeStep <= 0 {
		return fmt.Errorf("detection.time_step must be positive, got %g", c.Detection.TimeStep)
	}
	if c.Traffic.Count < 0 {
		return fmt.Errorf("traffic.count must not be negative, got %d", c.Traffic.Count)
	}
	return nil
}

// Build constructs the configured trajectory, surfacing the constructor's
// validation errors.
func (tc TrajectoryConfig) Build() (*trajectory.Trajectory, error) {
	waypoints := make([]types.Waypoint, len(tc.Waypoints))
	for i, wp := range tc.Waypoints {
		waypoints[i] = types.NewVec3(wp.X, wp.Y, wp.Z)
	}
	return trajectory.New(types.VehicleID(tc.ID), waypoints, tc.StartTime, tc.EndTime)
}
