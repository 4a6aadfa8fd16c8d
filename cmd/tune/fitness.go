package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/droplet/config"
	"github.com/pthm-cable/droplet/game"
	"github.com/pthm-cable/droplet/telemetry"
)

// FitnessEvaluator runs headless observer/autopilot sorties and scores how
// quickly the craft clears the fleet.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	lastLocked  float64 // mean lock fraction from the most recent Evaluate call
	lastCleared float64 // mean fraction of the fleet destroyed
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 5,
	}
}

// LastQuality returns the lock fraction and cleared fraction from the most
// recent evaluation.
func (fe *FitnessEvaluator) LastQuality() (locked, cleared float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastLocked, fe.lastCleared
}

// runResult holds the results from a single sortie.
type runResult struct {
	ticks       int32 // ticks until the fleet was cleared, or maxTicks
	destroyed   int
	total       int
	windowStats []telemetry.WindowStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSortie(x, s)
		}(i, seed)
	}
	wg.Wait()

	fitness := make([]float64, len(results))
	locked := make([]float64, len(results))
	cleared := make([]float64, len(results))
	for i, r := range results {
		fitness[i] = fe.computeFitness(r)
		locked[i] = lockFraction(r.windowStats)
		if r.total > 0 {
			cleared[i] = float64(r.destroyed) / float64(r.total)
		}
	}

	fe.mu.Lock()
	fe.lastLocked = stat.Mean(locked, nil)
	fe.lastCleared = stat.Mean(cleared, nil)
	fe.mu.Unlock()

	return stat.Mean(fitness, nil)
}

// runSortie executes one headless run until the fleet is gone or maxTicks.
func (fe *FitnessEvaluator) runSortie(x []float64, seed int64) *runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{ticks: fe.maxTicks}
	g, err := game.NewGame(cfg, game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		Observer:       true,
		Autopilot:      true,
	})
	if err != nil {
		return result
	}
	defer g.Unload()
	g.SetStatsCallback(func(stats telemetry.WindowStats) {
		result.windowStats = append(result.windowStats, stats)
	})

	for g.Tick() < fe.maxTicks {
		snap := g.UpdateHeadless()
		result.destroyed, result.total = snap.Destroyed, snap.Total
		if snap.Alive == 0 {
			result.ticks = snap.Tick
			break
		}
	}
	return result
}

// copyConfig returns a copy of the base config. Config holds only values and
// fixed-size arrays, so a struct copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness scores a run in simulated seconds. A cleared fleet scores its
// clear time; survivors each add an equal share of the full run length.
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	dt := fe.baseConfig.Physics.DT
	sec := float64(r.ticks) * dt
	if r.total == 0 {
		return sec
	}
	remaining := r.total - r.destroyed
	penalty := float64(fe.maxTicks) * dt / float64(r.total)
	return sec + float64(remaining)*penalty
}

// lockFraction averages the per-window lock fraction, weighting windows
// equally. Runs with no flushed window score zero.
func lockFraction(windows []telemetry.WindowStats) float64 {
	if len(windows) == 0 {
		return 0
	}
	v := make([]float64, len(windows))
	for i, w := range windows {
		v[i] = w.LockedFrac
	}
	return clamp01(stat.Mean(v, nil))
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return min(max(x, 0), 1)
}
