// Package components defines ECS components for the demo.
package components

import (
	"image/color"

	"github.com/pthm-cable/boxfall/physics"
)

// Kind distinguishes the roles a box plays in the scene.
type Kind uint8

const (
	KindGround Kind = iota
	KindBox
	KindBigBox
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindGround:
		return "ground"
	case KindBox:
		return "box"
	case KindBigBox:
		return "big_box"
	default:
		return "unknown"
	}
}

// Box holds what the renderer needs to draw an entity.
// Width and Height are in pixels.
type Box struct {
	Width  float32
	Height float32
	Color  color.RGBA
	Kind   Kind
}

// BodyRef points at the physics body backing an entity.
// The physics world owns the body; this is a read handle for rendering.
type BodyRef struct {
	Body physics.Body
}
