package game

import (
	"image/color"

	"github.com/pthm-cable/boxfall/camera"
)

// Sprite is a filled rectangle in screen space, ready for a draw call.
// X, Y is the screen position of the origin; the origin is the rectangle
// centre so rotation happens around the body's centre of mass.
type Sprite struct {
	X, Y             float32
	Width, Height    float32
	OriginX, OriginY float32
	Rotation         float32 // degrees, clockwise on screen
	Color            color.RGBA
}

// AppendSprites appends one sprite per entity, in creation order.
func (g *Game) AppendSprites(dst []Sprite) []Sprite {
	query := g.boxFilter.Query()
	for query.Next() {
		box, ref := query.Get()
		wx, wy := ref.Body.Position()
		sx, sy := g.camera.WorldToScreen(wx, wy)

		dst = append(dst, Sprite{
			X:        float32(sx),
			Y:        float32(sy),
			Width:    box.Width,
			Height:   box.Height,
			OriginX:  box.Width / 2,
			OriginY:  box.Height / 2,
			Rotation: float32(camera.ToScreenDegrees(ref.Body.Angle())),
			Color:    box.Color,
		})
	}
	return dst
}
