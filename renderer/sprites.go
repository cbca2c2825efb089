// Package renderer draws game sprites with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/boxfall/game"
)

// Color converts an RGBA colour to a raylib colour.
func Color(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Rect returns the destination rectangle and origin for a sprite.
// DrawRectanglePro places the origin at (X, Y) and rotates around it.
func Rect(s game.Sprite) (rl.Rectangle, rl.Vector2) {
	return rl.Rectangle{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height},
		rl.Vector2{X: s.OriginX, Y: s.OriginY}
}

// DrawSprites draws every sprite as a filled, rotated rectangle.
// Must be called between rl.BeginDrawing and rl.EndDrawing.
func DrawSprites(sprites []game.Sprite) {
	for _, s := range sprites {
		rec, origin := Rect(s)
		rl.DrawRectanglePro(rec, origin, s.Rotation, Color(s.Color))
	}
}
