package game

import (
	"log/slog"

	"github.com/pthm-cable/boxfall/physics"
	"github.com/pthm-cable/boxfall/telemetry"
)

// observeBodies samples every body and feeds the settle tracker.
func (g *Game) observeBodies() {
	g.samples = g.samples[:0]

	query := g.boxFilter.Query()
	for query.Next() {
		_, ref := query.Get()
		b := ref.Body
		_, y := b.Position()

		g.samples = append(g.samples, telemetry.BodySample{
			ID:            query.Entity().ID(),
			Dynamic:       b.Kind() == physics.Dynamic,
			Awake:         b.IsAwake(),
			Speed:         physics.Speed(b),
			KineticEnergy: physics.KineticEnergy(b),
			Height:        y,
		})
	}

	g.collector.Observe(g.samples)
}

// flushTelemetry checks if the stats window should be flushed and emits it.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.samples)
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		slog.Info("perf", "perf", perfStats)
		g.logWorldState()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
