package physics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/boxfall/config"
)

func engines() []string {
	return []string{config.EngineBox2D, config.EngineChipmunk}
}

func newTestWorld(t *testing.T, engine string) World {
	t.Helper()
	cfg := config.Defaults().Physics
	cfg.Engine = engine
	w, err := New(cfg)
	require.NoError(t, err)
	require.Equal(t, engine, w.Engine())
	return w
}

func groundDef() BodyDef {
	return BodyDef{Kind: Static, X: 350.0 / 30, Y: 50.0 / 30, HalfWidth: 250.0 / 30, HalfHeight: 50.0 / 30}
}

func TestNewUnknownEngine(t *testing.T) {
	cfg := config.Defaults().Physics
	cfg.Engine = "havok"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestCreateBodyCounts(t *testing.T) {
	for _, engine := range engines() {
		t.Run(engine, func(t *testing.T) {
			w := newTestWorld(t, engine)
			assert.Equal(t, 0, w.BodyCount())

			w.CreateBody(groundDef())
			for i := 0; i < 5; i++ {
				w.CreateBody(BodyDef{Kind: Dynamic, X: float64(i), Y: 10, HalfWidth: 0.4, HalfHeight: 0.4, Density: 1, Friction: 0.7})
			}
			assert.Equal(t, 6, w.BodyCount())

			for i := 0; i < 30; i++ {
				w.Step()
			}
			assert.Equal(t, 6, w.BodyCount())
		})
	}
}

func TestCreateBodyPosition(t *testing.T) {
	for _, engine := range engines() {
		t.Run(engine, func(t *testing.T) {
			w := newTestWorld(t, engine)
			b := w.CreateBody(BodyDef{Kind: Dynamic, X: 50.0 / 30, Y: 70.0 / 30, HalfWidth: 0.4, HalfHeight: 0.4, Density: 1})

			x, y := b.Position()
			assert.InDelta(t, 1.667, x, 0.001)
			assert.InDelta(t, 2.333, y, 0.001)
			assert.Equal(t, Dynamic, b.Kind())
			assert.InDelta(t, 0.64, b.Mass(), 1e-9)
		})
	}
}

func TestStaticGroundNeverMoves(t *testing.T) {
	for _, engine := range engines() {
		t.Run(engine, func(t *testing.T) {
			w := newTestWorld(t, engine)
			ground := w.CreateBody(groundDef())
			// Pile something on top so the ground sees contacts
			for i := 0; i < 10; i++ {
				w.CreateBody(BodyDef{Kind: Dynamic, X: 8 + float64(i)*0.9, Y: 5, HalfWidth: 0.4, HalfHeight: 0.4, Density: 1, Friction: 0.7})
			}

			x0, y0 := ground.Position()
			a0 := ground.Angle()
			for i := 0; i < 600; i++ {
				w.Step()
				x, y := ground.Position()
				require.Equal(t, x0, x)
				require.Equal(t, y0, y)
				require.Equal(t, a0, ground.Angle())
			}
			assert.Equal(t, Static, ground.Kind())
			assert.False(t, ground.IsAwake())
			assert.Zero(t, KineticEnergy(ground))
		})
	}
}

func TestDynamicBodyFalls(t *testing.T) {
	for _, engine := range engines() {
		t.Run(engine, func(t *testing.T) {
			w := newTestWorld(t, engine)
			b := w.CreateBody(BodyDef{Kind: Dynamic, X: 0, Y: 100, HalfWidth: 0.5, HalfHeight: 0.5, Density: 1})

			for i := 0; i < 60; i++ {
				w.Step()
			}
			_, y := b.Position()
			_, vy := b.LinearVelocity()
			assert.Less(t, y, 100.0)
			// One second of free fall at 9 m/s^2
			assert.InDelta(t, -9.0, vy, 0.01)
			assert.InDelta(t, 9.0, Speed(b), 0.01)
			assert.True(t, b.IsAwake())
		})
	}
}

func TestBoxRestsOnGround(t *testing.T) {
	for _, engine := range engines() {
		t.Run(engine, func(t *testing.T) {
			w := newTestWorld(t, engine)
			ground := w.CreateBody(groundDef())
			b := w.CreateBody(BodyDef{Kind: Dynamic, X: 350.0 / 30, Y: 6, HalfWidth: 0.4, HalfHeight: 0.4, Density: 1, Friction: 0.7})

			for i := 0; i < 300; i++ {
				w.Step()
			}
			_, gy := ground.Position()
			_, y := b.Position()
			groundTop := gy + 50.0/30
			assert.InDelta(t, groundTop+0.4, y, 0.05)
		})
	}
}

func TestApplyForceToCenterLastsOneStep(t *testing.T) {
	for _, engine := range engines() {
		t.Run(engine, func(t *testing.T) {
			w := newTestWorld(t, engine)
			b := w.CreateBody(BodyDef{Kind: Dynamic, X: 0, Y: 100, HalfWidth: 0.5, HalfHeight: 0.5, Density: 1})
			require.InDelta(t, 1.0, b.Mass(), 1e-9)

			b.ApplyForceToCenter(-10, 0)
			w.Step()
			vx, _ := b.LinearVelocity()
			assert.InDelta(t, -10.0/60.0, vx, 1e-6)

			w.Step()
			vx2, _ := b.LinearVelocity()
			assert.InDelta(t, vx, vx2, 1e-9)
			assert.InDelta(t, 0, b.Angle(), 1e-9)
		})
	}
}

func TestBodyKindString(t *testing.T) {
	assert.Equal(t, "static", Static.String())
	assert.Equal(t, "dynamic", Dynamic.String())
}

func TestWorldsStepConcurrently(t *testing.T) {
	for _, engine := range engines() {
		t.Run(engine, func(t *testing.T) {
			const workers = 4
			finals := make([][2]float64, workers)

			var wg sync.WaitGroup
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()
					cfg := config.Defaults().Physics
					cfg.Engine = engine
					w, err := New(cfg)
					if err != nil {
						t.Error(err)
						return
					}
					w.CreateBody(groundDef())
					var top Body
					for j := 0; j < 5; j++ {
						top = w.CreateBody(BodyDef{
							Kind: Dynamic, X: 350.0 / 30, Y: 4 + float64(j),
							HalfWidth: 0.4, HalfHeight: 0.4, Density: 1, Friction: 0.7,
						})
					}
					for s := 0; s < 240; s++ {
						w.Step()
					}
					x, y := top.Position()
					finals[idx] = [2]float64{x, y}
				}(i)
			}
			wg.Wait()

			// Identical scenes stepped side by side end in the same state
			for i := 1; i < workers; i++ {
				assert.Equal(t, finals[0], finals[i])
			}
		})
	}
}
