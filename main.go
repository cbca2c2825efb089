package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/profile"

	"github.com/pthm-cable/boxfall/config"
	"github.com/pthm-cable/boxfall/game"
	"github.com/pthm-cable/boxfall/renderer"
	"github.com/pthm-cable/boxfall/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	engine := flag.String("engine", "", "Physics engine: box2d or chipmunk (empty = use config)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile to the working directory (headless only)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *engine != "" {
		cfg.Physics.Engine = *engine
		if err := cfg.Validate(); err != nil {
			slog.Error("invalid engine", "error", err)
			os.Exit(1)
		}
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Config:    cfg,
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		Headless:  *headless,
	}

	if *headless {
		if err := runHeadless(opts, *maxTicks, *profileMode); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if *profileMode != "" {
		slog.Warn("profiling is only available with -headless, ignoring", "profile", *profileMode)
	}
	if err := runWindowed(cfg, opts, *maxTicks); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// profileOption maps a -profile value to a pkg/profile mode.
func profileOption(mode string) (func(*profile.Profile), error) {
	switch mode {
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfileAllocs, nil
	default:
		return nil, fmt.Errorf("unknown profile mode %q", mode)
	}
}

// runHeadless steps the scene as fast as possible. Pure CPU, no raylib calls.
func runHeadless(opts game.Options, maxTicks int, profileMode string) error {
	if profileMode != "" {
		mode, err := profileOption(profileMode)
		if err != nil {
			slog.Warn("profiling disabled", "error", err)
		} else {
			defer profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		}
	}

	g, err := game.NewGame(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
	)

	start := time.Now()
	for {
		g.Update()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached",
				"tick", g.Tick(),
				"elapsed", time.Since(start).Round(time.Millisecond).String(),
			)
			return nil
		}
	}
}

// runWindowed opens the window and runs one fixed step per frame.
func runWindowed(cfg *config.Config, opts game.Options, maxTicks int) error {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	hud := ui.NewHUD()
	w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	for !rl.WindowShouldClose() {
		g.Update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		renderer.DrawSprites(g.Sprites())
		if cfg.Screen.ShowHUD {
			hud.Draw(ui.NewHUDData(cfg.Screen.Title, g.Status(), w, h))
		}
		rl.EndDrawing()
		g.RecordFrame()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
	return nil
}
