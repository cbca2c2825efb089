package main

import (
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/boxfall/config"
	"github.com/pthm-cable/boxfall/game"
	"github.com/pthm-cable/boxfall/telemetry"
)

// FitnessEvaluator runs headless scenes and scores how quickly they come to rest.
type FitnessEvaluator struct {
	params         *ParamVector
	maxTicks       int32
	seeds          []int64
	baseConfig     *config.Config
	settleFraction float64

	mu         sync.Mutex
	lastSpread float64 // std dev of settle ticks across seeds in the last Evaluate
}

// NewFitnessEvaluator creates a new evaluator.
// settleFraction is the share of dynamic bodies that must be settled for a run to end.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, settleFraction float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:         params,
		maxTicks:       maxTicks,
		seeds:          seeds,
		baseConfig:     baseCfg,
		settleFraction: settleFraction,
	}
}

// LastSpread returns the settle tick standard deviation from the most recent evaluation.
func (fe *FitnessEvaluator) LastSpread() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSpread
}

// runResult holds the results from a single simulation run.
type runResult struct {
	settleTicks int32                   // ticks until the settle target (or maxTicks)
	windowStats []telemetry.WindowStats // collected via StatsCallback each window
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the mean number of ticks until the pile settles.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			r, err := fe.runSimulation(x, s)
			if err != nil {
				slog.Error("run failed", "seed", s, "error", err)
				results[idx] = float64(fe.maxTicks)
				return
			}
			results[idx] = fe.computeFitness(r)
		}(i, seed)
	}
	wg.Wait()

	mean, std := meanStd(results)

	fe.mu.Lock()
	fe.lastSpread = std
	fe.mu.Unlock()

	return mean
}

// runSimulation executes a single headless run until the settle target or maxTicks.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) (*runResult, error) {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}

	g, err := game.NewGame(game.Options{
		Config:   cfg,
		Seed:     seed,
		Headless: true,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return nil, err
	}
	defer g.Unload()

	target := settleTarget(g.DynamicCount(), fe.settleFraction)
	for g.Tick() < fe.maxTicks {
		g.Update()
		if g.Settled() >= target {
			result.settleTicks = g.Tick()
			return result, nil
		}
	}

	result.settleTicks = fe.maxTicks
	return result, nil
}

// copyConfig returns a copy of the base config. Config holds only values.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Runs that never settle are penalised by the residual kinetic energy of
// their last window so the optimizer still sees a gradient.
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	fitness := float64(r.settleTicks)
	if r.settleTicks >= fe.maxTicks && len(r.windowStats) > 0 {
		fitness += r.windowStats[len(r.windowStats)-1].KineticEnergy
	}
	return fitness
}

// settleTarget returns the settled body count that ends a run.
func settleTarget(dynamic int, fraction float64) int {
	return int(math.Ceil(float64(dynamic) * fraction))
}

func meanStd(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}
