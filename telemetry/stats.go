package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// BodySample is one body's state at the end of a tick.
type BodySample struct {
	ID            uint32
	Dynamic       bool
	Awake         bool
	Speed         float64 // m/s
	KineticEnergy float64 // J
	Height        float64 // m, body centre
}

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Body counts at window end
	Bodies  int `csv:"bodies"`
	Awake   int `csv:"awake"`
	Settled int `csv:"settled"`

	// Speed distribution over dynamic bodies (m/s)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	KineticEnergy float64 `csv:"kinetic_energy"`
	MaxHeight     float64 `csv:"max_height"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSpeedStats calculates mean, sample standard deviation, median and
// 90th percentile of the given speeds.
func ComputeSpeedStats(values []float64) (mean, std, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}
	if n == 1 {
		return values[0], 0, values[0], values[0]
	}

	mean, std = stat.MeanStdDev(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, std, Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// Summarize fills the body-derived fields of a WindowStats.
func Summarize(samples []BodySample) WindowStats {
	var s WindowStats
	s.Bodies = len(samples)
	if len(samples) == 0 {
		return s
	}

	speeds := make([]float64, 0, len(samples))
	energies := make([]float64, 0, len(samples))
	heights := make([]float64, 0, len(samples))
	for _, b := range samples {
		heights = append(heights, b.Height)
		if !b.Dynamic {
			continue
		}
		if b.Awake {
			s.Awake++
		}
		speeds = append(speeds, b.Speed)
		energies = append(energies, b.KineticEnergy)
	}

	s.SpeedMean, s.SpeedStd, s.SpeedP50, s.SpeedP90 = ComputeSpeedStats(speeds)
	s.KineticEnergy = floats.Sum(energies)
	s.MaxHeight = floats.Max(heights)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("bodies", s.Bodies),
		slog.Int("awake", s.Awake),
		slog.Int("settled", s.Settled),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("kinetic_energy", s.KineticEnergy),
		slog.Float64("max_height", s.MaxHeight),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
