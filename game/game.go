// Package game wires the physics world, the entity registry and telemetry
// into the per-frame update used by every frontend.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/boxfall/camera"
	"github.com/pthm-cable/boxfall/components"
	"github.com/pthm-cable/boxfall/config"
	"github.com/pthm-cable/boxfall/physics"
	"github.com/pthm-cable/boxfall/telemetry"
)

// Options configures game initialization.
type Options struct {
	Config    *config.Config // nil = config.Cfg()
	Seed      int64          // RNG seed for box placement
	LogStats  bool           // periodic slog output
	OutputDir string         // CSV output directory (empty = disabled)
	Headless  bool           // skip sprite generation

	// StatsCallback is called with each flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete demo state. It owns the physics world.
type Game struct {
	cfg    *config.Config
	rng    *rand.Rand
	camera *camera.Camera

	world   *ecs.World
	physics physics.World

	boxMapper *ecs.Map2[components.Box, components.BodyRef]
	boxFilter *ecs.Filter2[components.Box, components.BodyRef]
	bigBox    ecs.Entity

	// State
	tick     int32
	headless bool

	// Per-tick scratch buffers
	samples []telemetry.BodySample
	sprites []Sprite

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	lastStats     telemetry.WindowStats
	statsCallback func(telemetry.WindowStats)
}

// NewGame creates the physics world and spawns the scene.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	pw, err := physics.New(cfg.Physics)
	if err != nil {
		return nil, fmt.Errorf("creating physics world: %w", err)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	world := ecs.NewWorld()
	entities := cfg.Derived.Entities

	g := &Game{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		camera:    camera.New(cfg.Physics.PixelsPerMeter, float64(cfg.Screen.Width), float64(cfg.Screen.Height)),
		world:     world,
		physics:   pw,
		boxMapper: ecs.NewMap2[components.Box, components.BodyRef](world),
		boxFilter: ecs.NewFilter2[components.Box, components.BodyRef](world),
		headless:  opts.Headless,
		samples:   make([]telemetry.BodySample, 0, entities),
		sprites:   make([]Sprite, 0, entities),
		collector: telemetry.NewCollector(
			cfg.Telemetry.StatsWindow,
			cfg.Derived.DT32,
			telemetry.NewSettleTracker(cfg.Telemetry.SettleSpeed, cfg.Telemetry.SettleTicks, entities),
		),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		outputManager: om,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}

	g.spawnScene()

	slog.Info("scene spawned",
		"engine", pw.Engine(),
		"bodies", pw.BodyCount(),
		"seed", opts.Seed,
		"headless", opts.Headless,
	)

	return g, nil
}

// Update advances the world by one fixed step and refreshes derived state.
func (g *Game) Update() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseStep)
	g.physics.Step()
	g.tick++

	if !g.headless {
		g.perfCollector.StartPhase(telemetry.PhaseSprites)
		g.sprites = g.AppendSprites(g.sprites[:0])
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.observeBodies()
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// RecordFrame marks a presented frame for FPS tracking.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}

// Sprites returns the screen-space rectangles computed by the last Update.
// The slice is reused by the next Update.
func (g *Game) Sprites() []Sprite {
	return g.sprites
}

// Tick returns the number of steps taken so far.
func (g *Game) Tick() int32 {
	return g.tick
}

// EntityCount returns the number of registered entities.
func (g *Game) EntityCount() int {
	n := 0
	query := g.boxFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Settled returns the number of dynamic bodies currently at rest.
func (g *Game) Settled() int {
	return g.collector.Settled()
}

// DynamicCount returns the number of dynamic bodies in the scene.
func (g *Game) DynamicCount() int {
	return g.cfg.Boxes.Count + 1
}

// Status is a snapshot for HUDs and logs.
type Status struct {
	Tick     int32
	SimTime  float64
	Entities int
	Dynamic  int
	Engine   string
	Settled  int
	Awake    int
	FPS      float64
}

// Status returns the current status snapshot.
func (g *Game) Status() Status {
	return Status{
		Tick:     g.tick,
		SimTime:  float64(g.tick) * g.cfg.Physics.DT,
		Entities: g.physics.BodyCount(),
		Dynamic:  g.DynamicCount(),
		Engine:   g.physics.Engine(),
		Settled:  g.Settled(),
		Awake:    g.lastStats.Awake,
		FPS:      g.perfCollector.Stats().FPS,
	}
}

// Unload flushes and closes telemetry output.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	slog.Info("game unloaded", "tick", g.tick, "bodies", g.physics.BodyCount())
}
