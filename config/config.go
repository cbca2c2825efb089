// Package config provides configuration loading and access for the demo.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Physics engine names accepted by physics.engine.
const (
	EngineBox2D    = "box2d"
	EngineChipmunk = "chipmunk"
)

// Config holds all demo configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Ground    GroundConfig    `yaml:"ground"`
	Boxes     BoxesConfig     `yaml:"boxes"`
	BigBox    BigBoxConfig    `yaml:"big_box"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
	ShowHUD   bool   `yaml:"show_hud"`
}

// Vec2Config is a 2D vector in metric units.
type Vec2Config struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ColorConfig is an RGBA fill colour.
type ColorConfig struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

// RGBA converts the configured colour to the standard library type.
func (c ColorConfig) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// PhysicsConfig holds world stepping parameters.
type PhysicsConfig struct {
	Engine             string     `yaml:"engine"`
	PixelsPerMeter     float64    `yaml:"pixels_per_meter"`
	Gravity            Vec2Config `yaml:"gravity"` // m/s^2, Y up
	DT                 float64    `yaml:"dt"`
	VelocityIterations int        `yaml:"velocity_iterations"`
	PositionIterations int        `yaml:"position_iterations"`
}

// GroundConfig describes the static ground rectangle in pixels (Y up).
type GroundConfig struct {
	X      float64     `yaml:"x"`
	Y      float64     `yaml:"y"`
	Width  float64     `yaml:"width"`
	Height float64     `yaml:"height"`
	Color  ColorConfig `yaml:"color"`
}

// BoxesConfig describes the randomly placed small boxes.
// Spawn bounds are inclusive pixel coordinates.
type BoxesConfig struct {
	Count    int         `yaml:"count"`
	MinX     int         `yaml:"min_x"`
	MaxX     int         `yaml:"max_x"`
	MinY     int         `yaml:"min_y"`
	MaxY     int         `yaml:"max_y"`
	Size     float64     `yaml:"size"`
	Density  float64     `yaml:"density"`
	Friction float64     `yaml:"friction"`
	Color    ColorConfig `yaml:"color"`
}

// BigBoxConfig describes the heavy box that is pushed into the pile.
type BigBoxConfig struct {
	X        float64     `yaml:"x"`
	Y        float64     `yaml:"y"`
	Size     float64     `yaml:"size"`
	Density  float64     `yaml:"density"`
	Friction float64     `yaml:"friction"`
	Color    ColorConfig `yaml:"color"`
	Force    Vec2Config  `yaml:"force"` // newtons, applied once before the first step
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds of sim time per window
	PerfWindow  int     `yaml:"perf_window"`  // ticks averaged by the perf collector
	SettleSpeed float64 `yaml:"settle_speed"` // m/s below which a body counts as resting
	SettleTicks int     `yaml:"settle_ticks"` // consecutive resting ticks before a body is settled
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32     float32 // Physics.DT as float32
	Entities int     // ground + boxes + big box
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

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
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
		// Unmarshal into same struct - only overwrites fields present in file
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

// Validate reports the first setting that cannot drive a simulation.
func (c *Config) Validate() error {
	switch c.Physics.Engine {
	case EngineBox2D, EngineChipmunk:
	default:
		return fmt.Errorf("physics.engine: unknown engine %q", c.Physics.Engine)
	}
	if c.Physics.PixelsPerMeter <= 0 {
		return errors.New("physics.pixels_per_meter must be positive")
	}
	if c.Physics.DT <= 0 {
		return errors.New("physics.dt must be positive")
	}
	if c.Physics.VelocityIterations < 1 || c.Physics.PositionIterations < 1 {
		return errors.New("physics iteration counts must be at least 1")
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return errors.New("screen dimensions must be positive")
	}
	if c.Boxes.Count < 0 {
		return errors.New("boxes.count must not be negative")
	}
	if c.Boxes.MaxX < c.Boxes.MinX || c.Boxes.MaxY < c.Boxes.MinY {
		return errors.New("boxes spawn bounds are inverted")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.Entities = 1 + c.Boxes.Count + 1

	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = c.Screen.TargetFPS
	}
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
