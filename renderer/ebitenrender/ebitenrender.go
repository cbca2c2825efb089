// Package ebitenrender draws game sprites onto an ebiten image.
package ebitenrender

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/pthm-cable/boxfall/game"
)

// Renderer draws sprites by stretching a single white pixel.
type Renderer struct {
	pixel *ebiten.Image
	op    ebiten.DrawImageOptions
}

// New creates a renderer.
func New() *Renderer {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &Renderer{pixel: pixel}
}

// Transform sets m to map the unit square onto the sprite: scale to size,
// shift the origin to (0,0), rotate clockwise, then move to the screen position.
func Transform(m *ebiten.GeoM, s game.Sprite) {
	m.Reset()
	m.Scale(float64(s.Width), float64(s.Height))
	m.Translate(-float64(s.OriginX), -float64(s.OriginY))
	m.Rotate(float64(s.Rotation) * math.Pi / 180)
	m.Translate(float64(s.X), float64(s.Y))
}

// DrawSprites draws every sprite onto dst.
func (r *Renderer) DrawSprites(dst *ebiten.Image, sprites []game.Sprite) {
	for _, s := range sprites {
		Transform(&r.op.GeoM, s)
		r.op.ColorScale.Reset()
		r.op.ColorScale.ScaleWithColor(s.Color)
		dst.DrawImage(r.pixel, &r.op)
	}
}
