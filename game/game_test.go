package game

import (
	"bytes"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/boxfall/components"
	"github.com/pthm-cable/boxfall/config"
	"github.com/pthm-cable/boxfall/physics"
	"github.com/pthm-cable/boxfall/telemetry"
)

func engines() []string {
	return []string{config.EngineBox2D, config.EngineChipmunk}
}

func newTestGame(t *testing.T, engine string, headless bool) *Game {
	t.Helper()
	cfg := config.Defaults()
	cfg.Physics.Engine = engine
	g, err := NewGame(Options{Config: cfg, Seed: 1, Headless: headless})
	require.NoError(t, err)
	t.Cleanup(g.Unload)
	return g
}

func TestEntityCountInvariant(t *testing.T) {
	for _, engine := range engines() {
		t.Run(engine, func(t *testing.T) {
			g := newTestGame(t, engine, true)

			assert.Equal(t, 309, g.EntityCount())
			assert.Equal(t, 309, g.physics.BodyCount())

			for i := 0; i < 120; i++ {
				g.Update()
				require.Equal(t, 309, g.EntityCount())
			}
			assert.Equal(t, 309, g.physics.BodyCount())
			assert.Equal(t, int32(120), g.Tick())
		})
	}
}

func TestSceneComposition(t *testing.T) {
	g := newTestGame(t, config.EngineBox2D, true)

	counts := map[components.Kind]int{}
	query := g.boxFilter.Query()
	first := true
	for query.Next() {
		box, ref := query.Get()
		counts[box.Kind]++
		if first {
			assert.Equal(t, components.KindGround, box.Kind, "ground is created first")
			assert.Equal(t, physics.Static, ref.Body.Kind())
			first = false
		}
		if box.Kind == components.KindBox {
			x, y := ref.Body.Position()
			assert.GreaterOrEqual(t, x, 50.0/30-1e-9)
			assert.LessOrEqual(t, x, 550.0/30+1e-9)
			assert.GreaterOrEqual(t, y, 70.0/30-1e-9)
			assert.LessOrEqual(t, y, 550.0/30+1e-9)
			assert.Equal(t, float32(24), box.Width)
			assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, box.Color)
		}
	}

	assert.Equal(t, 1, counts[components.KindGround])
	assert.Equal(t, 307, counts[components.KindBox])
	assert.Equal(t, 1, counts[components.KindBigBox])
}

func TestCreateBoxConvertsUnits(t *testing.T) {
	g := newTestGame(t, config.EngineBox2D, true)

	e := g.createBox(50, 70, 24, 24, 1, 0.7, color.RGBA{A: 255}, components.KindBox)
	box, ref := g.boxMapper.Get(e)

	x, y := ref.Body.Position()
	assert.InDelta(t, 1.667, x, 0.001)
	assert.InDelta(t, 2.333, y, 0.001)
	assert.Equal(t, float32(24), box.Width)
	// density 1 over a 0.8 m square
	assert.InDelta(t, 0.64, ref.Body.Mass(), 1e-9)
}

func TestGroundNeverMoves(t *testing.T) {
	for _, engine := range engines() {
		t.Run(engine, func(t *testing.T) {
			g := newTestGame(t, engine, true)

			query := g.boxFilter.Query()
			require.True(t, query.Next())
			_, ref := query.Get()
			ground := ref.Body
			query.Close()

			x0, y0 := ground.Position()
			for i := 0; i < 300; i++ {
				g.Update()
				x, y := ground.Position()
				require.Equal(t, x0, x)
				require.Equal(t, y0, y)
				require.Zero(t, ground.Angle())
			}
		})
	}
}

func TestBigBoxIsPushedLeft(t *testing.T) {
	for _, engine := range engines() {
		t.Run(engine, func(t *testing.T) {
			g := newTestGame(t, engine, true)
			_, ref := g.boxMapper.Get(g.bigBox)

			x0, _ := ref.Body.Position()
			g.Update()
			vx, _ := ref.Body.LinearVelocity()
			// F/m*dt with m = 10 * (64/30)^2
			mass := 10 * (64.0 / 30) * (64.0 / 30)
			assert.InDelta(t, -100000/mass/60, vx, 0.01)

			g.Update()
			x, _ := ref.Body.Position()
			assert.Less(t, x, x0)
		})
	}
}

func TestSameSeedSameScene(t *testing.T) {
	a := newTestGame(t, config.EngineBox2D, false)
	b := newTestGame(t, config.EngineBox2D, false)

	a.Update()
	b.Update()

	assert.Equal(t, a.Sprites(), b.Sprites())
}

func TestSpritesMatchBodies(t *testing.T) {
	g := newTestGame(t, config.EngineBox2D, false)
	assert.Empty(t, g.Sprites())

	g.Update()
	sprites := g.Sprites()
	require.Len(t, sprites, 309)

	ground := sprites[0]
	assert.InDelta(t, 350, ground.X, 1e-3)
	assert.InDelta(t, 550, ground.Y, 1e-3)
	assert.Equal(t, float32(500), ground.Width)
	assert.Equal(t, float32(100), ground.Height)
	assert.Equal(t, float32(250), ground.OriginX)
	assert.Equal(t, float32(50), ground.OriginY)
	assert.Zero(t, ground.Rotation)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, ground.Color)

	big := sprites[len(sprites)-1]
	assert.Equal(t, float32(64), big.Width)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, big.Color)

	// Every sprite follows its body through the screen transform
	i := 0
	query := g.boxFilter.Query()
	for query.Next() {
		_, ref := query.Get()
		x, y := ref.Body.Position()
		assert.InDelta(t, x*30, sprites[i].X, 1e-3)
		assert.InDelta(t, 600-y*30, sprites[i].Y, 1e-3)
		assert.InDelta(t, -ref.Body.Angle()*57.2957795, sprites[i].Rotation, 1e-3)
		i++
	}
}

func TestHeadlessSkipsSprites(t *testing.T) {
	g := newTestGame(t, config.EngineBox2D, true)
	g.Update()
	assert.Empty(t, g.Sprites())
	assert.Len(t, g.AppendSprites(nil), 309)
}

func TestStatsWindows(t *testing.T) {
	cfg := config.Defaults()
	cfg.Telemetry.StatsWindow = 1.0

	var windows []telemetry.WindowStats
	g, err := NewGame(Options{
		Config:        cfg,
		Seed:          7,
		Headless:      true,
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	require.NoError(t, err)
	defer g.Unload()

	for i := 0; i < 180; i++ {
		g.Update()
	}

	require.Len(t, windows, 3)
	assert.Equal(t, int32(60), windows[0].WindowEndTick)
	assert.Equal(t, int32(180), windows[2].WindowEndTick)
	assert.Greater(t, windows[0].KineticEnergy, 0.0)
	for _, w := range windows {
		assert.Equal(t, 309, w.Bodies)
		assert.LessOrEqual(t, w.Awake, 308)
	}

	st := g.Status()
	assert.Equal(t, g.Settled(), st.Settled)
	assert.Equal(t, 308, g.DynamicCount())
	assert.Equal(t, g.DynamicCount(), st.Dynamic)
	assert.Equal(t, int32(180), st.Tick)
	assert.InDelta(t, 3.0, st.SimTime, 1e-9)
	assert.Equal(t, 309, st.Entities)
	assert.Equal(t, config.EngineBox2D, st.Engine)
}

func TestOutputDir(t *testing.T) {
	cfg := config.Defaults()
	cfg.Telemetry.StatsWindow = 0.5
	dir := filepath.Join(t.TempDir(), "out")

	g, err := NewGame(Options{Config: cfg, Headless: true, OutputDir: dir})
	require.NoError(t, err)
	for i := 0; i < 60; i++ {
		g.Update()
	}
	g.Unload()

	for _, name := range []string{"telemetry.csv", "perf.csv", "config.yaml"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestNewGameRejectsUnknownEngine(t *testing.T) {
	cfg := config.Defaults()
	cfg.Physics.Engine = "unknown"
	_, err := NewGame(Options{Config: cfg, Headless: true})
	assert.Error(t, err)
}

func TestLogStats(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	cfg := config.Defaults()
	cfg.Telemetry.StatsWindow = 0.5
	g, err := NewGame(Options{Config: cfg, Headless: true, LogStats: true})
	require.NoError(t, err)
	defer g.Unload()

	for i := 0; i < 30; i++ {
		g.Update()
	}

	out := buf.String()
	assert.Contains(t, out, `"msg":"stats"`)
	assert.Contains(t, out, `"msg":"perf"`)
	assert.Contains(t, out, `"msg":"world"`)
	assert.Contains(t, out, `"big_box":{`)
}
