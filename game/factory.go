package game

import (
	"image/color"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/boxfall/components"
	"github.com/pthm-cable/boxfall/physics"
)

// spawnScene creates the ground, the small boxes and the big box, then
// pushes the big box into the pile.
func (g *Game) spawnScene() {
	cfg := g.cfg

	gr := cfg.Ground
	g.createGround(gr.X, gr.Y, gr.Width, gr.Height, gr.Color.RGBA())

	bx := cfg.Boxes
	for i := 0; i < bx.Count; i++ {
		x := bx.MinX + g.rng.Intn(bx.MaxX-bx.MinX+1)
		y := bx.MinY + g.rng.Intn(bx.MaxY-bx.MinY+1)
		g.createBox(float64(x), float64(y), bx.Size, bx.Size, bx.Density, bx.Friction, bx.Color.RGBA(), components.KindBox)
	}

	bb := cfg.BigBox
	g.bigBox = g.createBox(bb.X, bb.Y, bb.Size, bb.Size, bb.Density, bb.Friction, bb.Color.RGBA(), components.KindBigBox)

	_, ref := g.boxMapper.Get(g.bigBox)
	ref.Body.ApplyForceToCenter(bb.Force.X, bb.Force.Y)
}

// createBox creates a dynamic box at a pixel position (Y up).
func (g *Game) createBox(x, y, width, height, density, friction float64, c color.RGBA, kind components.Kind) ecs.Entity {
	wx, wy := g.camera.PixelToWorld(x, y)
	body := g.physics.CreateBody(physics.BodyDef{
		Kind:       physics.Dynamic,
		X:          wx,
		Y:          wy,
		HalfWidth:  g.camera.ToMeters(width / 2),
		HalfHeight: g.camera.ToMeters(height / 2),
		Density:    density,
		Friction:   friction,
	})
	return g.register(body, width, height, c, kind)
}

// createGround creates a static zero-density box at a pixel position (Y up).
func (g *Game) createGround(x, y, width, height float64, c color.RGBA) ecs.Entity {
	wx, wy := g.camera.PixelToWorld(x, y)
	body := g.physics.CreateBody(physics.BodyDef{
		Kind:       physics.Static,
		X:          wx,
		Y:          wy,
		HalfWidth:  g.camera.ToMeters(width / 2),
		HalfHeight: g.camera.ToMeters(height / 2),
	})
	return g.register(body, width, height, c, components.KindGround)
}

func (g *Game) register(body physics.Body, width, height float64, c color.RGBA, kind components.Kind) ecs.Entity {
	box := components.Box{
		Width:  float32(width),
		Height: float32(height),
		Color:  c,
		Kind:   kind,
	}
	ref := components.BodyRef{Body: body}
	return g.boxMapper.NewEntity(&box, &ref)
}
