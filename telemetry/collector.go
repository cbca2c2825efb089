package telemetry

import "math"

// Collector accumulates per-tick body samples and produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	settle *SettleTracker
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32, settle *SettleTracker) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		settle:              settle,
	}
}

// Observe feeds one tick of samples to the settle tracker.
func (c *Collector) Observe(samples []BodySample) {
	for _, b := range samples {
		if b.Dynamic {
			c.settle.Update(b.ID, b.Speed)
		}
	}
}

// Settled returns the current settled body count.
func (c *Collector) Settled() int {
	return c.settle.Count()
}

// WindowTicks returns the window length in ticks.
func (c *Collector) WindowTicks() int32 {
	return c.windowDurationTicks
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the latest samples and starts a new window.
func (c *Collector) Flush(currentTick int32, samples []BodySample) WindowStats {
	stats := Summarize(samples)
	stats.WindowStartTick = c.windowStartTick
	stats.WindowEndTick = currentTick
	stats.SimTimeSec = float64(currentTick) * float64(c.dt)
	stats.Settled = c.settle.Count()

	c.windowStartTick = currentTick
	return stats
}
