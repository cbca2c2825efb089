// Package camera maps between the physics world (metres, Y up, radians)
// and the screen (pixels, Y down, degrees).
package camera

import "math"

// DegPerRad converts radians to degrees.
const DegPerRad = 180 / math.Pi

// Camera converts positions and angles between world and screen space.
// The world origin sits at the bottom-left corner of the viewport.
type Camera struct {
	// PixelsPerMeter is the fixed scale factor between the two spaces.
	PixelsPerMeter float64

	// Viewport dimensions (screen size in pixels)
	ViewportW, ViewportH float64
}

// New creates a camera for a viewport of the given pixel size.
func New(pixelsPerMeter, viewportW, viewportH float64) *Camera {
	return &Camera{
		PixelsPerMeter: pixelsPerMeter,
		ViewportW:      viewportW,
		ViewportH:      viewportH,
	}
}

// ToMeters converts a pixel length to metres.
func (c *Camera) ToMeters(px float64) float64 {
	return px / c.PixelsPerMeter
}

// ToPixels converts a metric length to pixels.
func (c *Camera) ToPixels(m float64) float64 {
	return m * c.PixelsPerMeter
}

// PixelToWorld converts an unflipped pixel position (Y up, as used for
// spawn coordinates) to a world position in metres.
func (c *Camera) PixelToWorld(px, py float64) (wx, wy float64) {
	return c.ToMeters(px), c.ToMeters(py)
}

// WorldToScreen converts a world position to screen coordinates,
// flipping the vertical axis.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = c.ToPixels(wx)
	sy = c.ViewportH - c.ToPixels(wy)
	return sx, sy
}

// ScreenToWorld converts screen coordinates to a world position.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	wx = c.ToMeters(sx)
	wy = c.ToMeters(c.ViewportH - sy)
	return wx, wy
}

// ToScreenDegrees converts a counter-clockwise world angle in radians to
// a clockwise screen rotation in degrees.
func ToScreenDegrees(rad float64) float64 {
	return -1 * rad * DegPerRad
}

// ToWorldRadians is the inverse of ToScreenDegrees.
func ToWorldRadians(deg float64) float64 {
	return -1 * deg / DegPerRad
}
