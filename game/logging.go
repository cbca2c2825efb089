package game

import (
	"log/slog"

	"github.com/pthm-cable/boxfall/physics"
)

// logWorldState logs the big box and the registry size.
func (g *Game) logWorldState() {
	_, ref := g.boxMapper.Get(g.bigBox)
	b := ref.Body
	x, y := b.Position()
	vx, vy := b.LinearVelocity()

	slog.Info("world",
		"tick", g.tick,
		"entities", g.EntityCount(),
		"bodies", g.physics.BodyCount(),
		slog.Group("big_box",
			"x", x,
			"y", y,
			"vx", vx,
			"vy", vy,
			"angle", b.Angle(),
			"awake", b.IsAwake(),
			"kinetic_energy", physics.KineticEnergy(b),
		),
	)
}
