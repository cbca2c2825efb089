// Package physics wraps third-party rigid-body engines behind a small
// world/body surface. Units are metres, kilograms and radians with Y up.
package physics

import (
	"fmt"
	"math"

	"github.com/pthm-cable/boxfall/config"
)

// BodyKind selects how the engine simulates a body.
type BodyKind uint8

const (
	Static BodyKind = iota
	Dynamic
)

// String returns the kind name.
func (k BodyKind) String() string {
	if k == Dynamic {
		return "dynamic"
	}
	return "static"
}

// BodyDef describes one body with a single rectangular fixture.
type BodyDef struct {
	Kind       BodyKind
	X, Y       float64 // centre position (m)
	HalfWidth  float64 // m
	HalfHeight float64 // m
	Density    float64 // kg/m^2, ignored for static bodies
	Friction   float64 // 0 = engine default
}

// Body is a handle to an engine-owned body.
type Body interface {
	Position() (x, y float64)
	Angle() float64
	LinearVelocity() (vx, vy float64)
	Mass() float64
	Kind() BodyKind
	IsAwake() bool
	// ApplyForceToCenter adds a force (N) that acts during the next step only.
	ApplyForceToCenter(fx, fy float64)
}

// World owns every body it creates for its whole lifetime.
type World interface {
	CreateBody(def BodyDef) Body
	// Step advances the simulation by one fixed timestep.
	Step()
	BodyCount() int
	Engine() string
}

// New creates a world for the configured engine.
func New(cfg config.PhysicsConfig) (World, error) {
	switch cfg.Engine {
	case config.EngineBox2D:
		return NewBox2DWorld(cfg), nil
	case config.EngineChipmunk:
		return NewChipmunkWorld(cfg), nil
	default:
		return nil, fmt.Errorf("unknown physics engine %q", cfg.Engine)
	}
}

// Speed returns the magnitude of a body's linear velocity.
func Speed(b Body) float64 {
	vx, vy := b.LinearVelocity()
	return math.Hypot(vx, vy)
}

// KineticEnergy returns the translational kinetic energy of a body (J).
func KineticEnergy(b Body) float64 {
	vx, vy := b.LinearVelocity()
	return 0.5 * b.Mass() * (vx*vx + vy*vy)
}
