package physics

import (
	"github.com/jakecoffman/cp/v2"

	"github.com/pthm-cable/boxfall/config"
)

// Chipmunk tuning for a metre-scaled world.
const (
	chipmunkCollisionSlop  = 0.01 // m
	chipmunkSleepThreshold = 0.5  // s
	chipmunkGroundFriction = 1.0
)

// ChipmunkWorld runs the simulation on the Chipmunk2D port.
type ChipmunkWorld struct {
	space  *cp.Space
	dt     float64
	bodies int
}

// NewChipmunkWorld creates an empty space. Chipmunk has a single solver
// iteration count, so the velocity and position counts are summed.
func NewChipmunkWorld(cfg config.PhysicsConfig) *ChipmunkWorld {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: cfg.Gravity.X, Y: cfg.Gravity.Y})
	space.Iterations = uint(cfg.VelocityIterations + cfg.PositionIterations)
	space.SleepTimeThreshold = chipmunkSleepThreshold
	space.SetCollisionSlop(chipmunkCollisionSlop)

	return &ChipmunkWorld{space: space, dt: cfg.DT}
}

// CreateBody adds a body with one box shape.
func (w *ChipmunkWorld) CreateBody(def BodyDef) Body {
	width := def.HalfWidth * 2
	height := def.HalfHeight * 2

	var body *cp.Body
	friction := def.Friction
	if def.Kind == Static {
		body = cp.NewStaticBody()
		if friction <= 0 {
			friction = chipmunkGroundFriction
		}
	} else {
		mass := def.Density * width * height
		body = cp.NewBody(mass, cp.MomentForBox(mass, width, height))
	}
	// Position must be set before the shape is indexed
	body.SetPosition(cp.Vector{X: def.X, Y: def.Y})
	w.space.AddBody(body)

	shape := w.space.AddShape(cp.NewBox(body, width, height, 0))
	shape.SetFriction(friction)

	w.bodies++
	return &chipmunkBody{body: body}
}

// Step advances the space by dt.
func (w *ChipmunkWorld) Step() {
	w.space.Step(w.dt)
}

// BodyCount returns the number of bodies added to the space.
func (w *ChipmunkWorld) BodyCount() int {
	return w.bodies
}

// Engine returns the engine name.
func (w *ChipmunkWorld) Engine() string {
	return config.EngineChipmunk
}

type chipmunkBody struct {
	body *cp.Body
}

func (b *chipmunkBody) Position() (x, y float64) {
	p := b.body.Position()
	return p.X, p.Y
}

func (b *chipmunkBody) Angle() float64 {
	return b.body.Angle()
}

func (b *chipmunkBody) LinearVelocity() (vx, vy float64) {
	v := b.body.Velocity()
	return v.X, v.Y
}

func (b *chipmunkBody) Mass() float64 {
	if b.body.GetType() == cp.BODY_STATIC {
		return 0
	}
	return b.body.Mass()
}

func (b *chipmunkBody) Kind() BodyKind {
	if b.body.GetType() == cp.BODY_DYNAMIC {
		return Dynamic
	}
	return Static
}

func (b *chipmunkBody) IsAwake() bool {
	if b.body.GetType() == cp.BODY_STATIC {
		return false
	}
	return !b.body.IsSleeping()
}

func (b *chipmunkBody) ApplyForceToCenter(fx, fy float64) {
	b.body.ApplyForceAtWorldPoint(cp.Vector{X: fx, Y: fy}, b.body.Position())
}
