package physics

import (
	"sync"

	"github.com/ByteArena/box2d"

	"github.com/pthm-cable/boxfall/config"
)

// box2DMu serializes world mutation across Box2DWorld values. The box2d
// package keeps package-level solver counters (TOI and GJK call stats)
// that every Step writes.
var box2DMu sync.Mutex

// Box2DWorld runs the simulation on the Box2D port.
type Box2DWorld struct {
	world    box2d.B2World
	dt       float64
	velIters int
	posIters int
}

// NewBox2DWorld creates an empty Box2D world with the configured gravity.
func NewBox2DWorld(cfg config.PhysicsConfig) *Box2DWorld {
	return &Box2DWorld{
		world:    box2d.MakeB2World(box2d.MakeB2Vec2(cfg.Gravity.X, cfg.Gravity.Y)),
		dt:       cfg.DT,
		velIters: cfg.VelocityIterations,
		posIters: cfg.PositionIterations,
	}
}

// CreateBody adds a body with one box fixture.
func (w *Box2DWorld) CreateBody(def BodyDef) Body {
	box2DMu.Lock()
	defer box2DMu.Unlock()

	bd := box2d.MakeB2BodyDef()
	bd.Position.Set(def.X, def.Y)
	if def.Kind == Dynamic {
		bd.Type = box2d.B2BodyType.B2_dynamicBody
	}
	body := w.world.CreateBody(&bd)

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(def.HalfWidth, def.HalfHeight)

	if def.Kind == Static {
		// Static bodies take the default fixture with zero density
		body.CreateFixture(&shape, 0.0)
		return &box2DBody{body: body}
	}

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Density = def.Density
	if def.Friction > 0 {
		fd.Friction = def.Friction
	}
	body.CreateFixtureFromDef(&fd)

	return &box2DBody{body: body}
}

// Step advances the world by dt with the configured solver iterations.
func (w *Box2DWorld) Step() {
	box2DMu.Lock()
	defer box2DMu.Unlock()
	w.world.Step(w.dt, w.velIters, w.posIters)
}

// BodyCount returns the number of bodies in the world.
func (w *Box2DWorld) BodyCount() int {
	return w.world.GetBodyCount()
}

// Engine returns the engine name.
func (w *Box2DWorld) Engine() string {
	return config.EngineBox2D
}

type box2DBody struct {
	body *box2d.B2Body
}

func (b *box2DBody) Position() (x, y float64) {
	p := b.body.GetPosition()
	return p.X, p.Y
}

func (b *box2DBody) Angle() float64 {
	return b.body.GetAngle()
}

func (b *box2DBody) LinearVelocity() (vx, vy float64) {
	v := b.body.GetLinearVelocity()
	return v.X, v.Y
}

func (b *box2DBody) Mass() float64 {
	return b.body.GetMass()
}

func (b *box2DBody) Kind() BodyKind {
	if b.body.GetType() == box2d.B2BodyType.B2_dynamicBody {
		return Dynamic
	}
	return Static
}

func (b *box2DBody) IsAwake() bool {
	if b.body.GetType() == box2d.B2BodyType.B2_staticBody {
		return false
	}
	return b.body.IsAwake()
}

func (b *box2DBody) ApplyForceToCenter(fx, fy float64) {
	b.body.ApplyForceToCenter(box2d.MakeB2Vec2(fx, fy), false)
}
