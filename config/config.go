// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Lifecycle policy names accepted by rovers.lifecycle.
const (
	LifecycleRespawn = "respawn"
	LifecycleDynamic = "dynamic"
)

// Render backend names accepted by render.backend.
const (
	BackendPath     = "path"
	BackendGPU      = "gpu"
	BackendTerminal = "terminal"
	BackendHeadless = "headless"
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Arena     ArenaConfig     `yaml:"arena"`
	Points    PointsConfig    `yaml:"points"`
	Rovers    RoversConfig    `yaml:"rovers"`
	Colors    ColorsConfig    `yaml:"colors"`
	Governor  GovernorConfig  `yaml:"governor"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. Width and Height are the logical arena
// size used until the live surface reports its own.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ArenaConfig holds arena bounds parameters.
type ArenaConfig struct {
	ClipDistance float64 `yaml:"clip_distance"` // Margin around the visible arena kept in the diagram
}

// PointsConfig holds the stationary generator set.
type PointsConfig struct {
	Count int `yaml:"count"`
}

// RoversConfig holds rover population and motion parameters.
type RoversConfig struct {
	Count             int     `yaml:"count"`               // Initial rovers (fixed population in respawn mode)
	MinSpeed          float64 `yaml:"min_speed"`           // Pixels per second
	MaxSpeed          float64 `yaml:"max_speed"`           // Pixels per second
	Lifecycle         string  `yaml:"lifecycle"`           // respawn | dynamic
	MeanSpawnInterval float64 `yaml:"mean_spawn_interval"` // Seconds between spawns on average (dynamic)
	MaxPopulation     int     `yaml:"max_population"`      // Oldest rovers are pruned beyond this (dynamic, 0 = unbounded)
}

// HSVRange bounds a color family. Hue is in degrees, the rest in [0,1].
type HSVRange struct {
	HueMin float64 `yaml:"hue_min"`
	HueMax float64 `yaml:"hue_max"`
	SatMin float64 `yaml:"sat_min"`
	SatMax float64 `yaml:"sat_max"`
	ValMin float64 `yaml:"val_min"`
	ValMax float64 `yaml:"val_max"`
}

// ColorsConfig holds the two color families.
type ColorsConfig struct {
	Bright HSVRange `yaml:"bright"` // Rovers
	Dark   HSVRange `yaml:"dark"`   // Fixed points and background
}

// GovernorConfig holds the frame-rate cutoff.
type GovernorConfig struct {
	CutoffFPS       float64 `yaml:"cutoff_fps"`
	CutoffMinFrames int     `yaml:"cutoff_min_frames"`
}

// RenderConfig holds rendering options.
type RenderConfig struct {
	Backend string `yaml:"backend"` // path | gpu | terminal | headless
	ShowHUD bool   `yaml:"show_hud"`
	Outline bool   `yaml:"outline"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds of simulated time per stats row
	PerfWindow  int     `yaml:"perf_window"`  // Ticks in the perf rolling window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickSeconds      float64 // 1 / Screen.TargetFPS
	StatsWindowTicks int     // Telemetry.StatsWindow in ticks, at least 1
	Generators       int     // Points.Count + Rovers.Count at construction
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults,
// and validates the result. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TickSeconds = 1 / float64(c.Screen.TargetFPS)
	c.Derived.StatsWindowTicks = int(c.Telemetry.StatsWindow * float64(c.Screen.TargetFPS))
	if c.Derived.StatsWindowTicks < 1 {
		c.Derived.StatsWindowTicks = 1
	}
	c.Derived.Generators = c.Points.Count + c.Rovers.Count
}

// Refresh recomputes derived values after fields were changed in code.
func (c *Config) Refresh() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
