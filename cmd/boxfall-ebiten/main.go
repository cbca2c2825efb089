// Command boxfall-ebiten runs the box scene with an ebiten window instead of raylib.
//
// ebiten calls Update at the fixed TPS and Draw at the display refresh
// rate, so frames are counted per step in Update. The HUD FPS figure is
// ebiten.ActualFPS.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/pthm-cable/boxfall/config"
	"github.com/pthm-cable/boxfall/game"
	"github.com/pthm-cable/boxfall/renderer/ebitenrender"
)

// app adapts game.Game to the ebiten.Game interface.
type app struct {
	cfg      *config.Config
	game     *game.Game
	renderer *ebitenrender.Renderer
	maxTicks int
}

func (a *app) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return a.step()
}

// step advances one tick and counts it as one presented frame.
func (a *app) step() error {
	a.game.Update()
	a.game.RecordFrame()
	if a.maxTicks > 0 && int(a.game.Tick()) >= a.maxTicks {
		return ebiten.Termination
	}
	return nil
}

func (a *app) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	a.renderer.DrawSprites(screen, a.game.Sprites())

	if a.cfg.Screen.ShowHUD {
		st := a.game.Status()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\nengine %s\ntick %d  bodies %d\nsettled %d/%d  fps %.0f",
			a.cfg.Screen.Title, st.Engine, st.Tick, st.Entities, st.Settled, st.Dynamic, ebiten.ActualFPS()))
	}
}

func (a *app) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Screen.Width, a.cfg.Screen.Height
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	engine := flag.String("engine", "", "Physics engine: box2d or chipmunk (empty = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

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

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.NewGame(game.Options{Config: cfg, Seed: rngSeed})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle(cfg.Screen.Title)
	ebiten.SetTPS(cfg.Screen.TargetFPS)

	a := &app{cfg: cfg, game: g, renderer: ebitenrender.New(), maxTicks: *maxTicks}
	if err := ebiten.RunGame(a); err != nil {
		slog.Error("ebiten run failed", "error", err)
	}
}
