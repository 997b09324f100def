package main

import (
	"context"
	"errors"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/genesis/config"
	"github.com/pthm-cable/genesis/game"
	"github.com/pthm-cable/genesis/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	bestFitness float64
	lastResult  evalResult
}

// evalResult summarizes one Evaluate call, averaged over seeds.
type evalResult struct {
	Fitness  float64
	Survival float64 // ticks
	Quality  float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// LastResult returns the summary of the most recent evaluation.
func (fe *FitnessEvaluator) LastResult() evalResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastResult
}

// BestFitness returns the lowest average fitness seen so far.
func (fe *FitnessEvaluator) BestFitness() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestFitness
}

// Quality is measured after this many ticks so the founders' first
// generation does not dominate the score.
const qualityWarmupTicks = 20

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int // ticks both species were alive (maxTicks if they coexisted throughout)
	popA, popB    []float64
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Seeds run in parallel; each gets its own config copy and engine.
func (fe *FitnessEvaluator) Evaluate(ctx context.Context, x []float64) (evalResult, error) {
	results := make([]runResult, len(fe.seeds))
	errs := make([]error, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = fe.runSimulation(ctx, x, seed)
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return evalResult{}, err
	}

	var total evalResult
	for _, r := range results {
		quality := computeQuality(r)
		total.Fitness += computeFitness(r.survivalTicks, quality)
		total.Survival += float64(r.survivalTicks)
		total.Quality += quality
	}
	n := float64(len(fe.seeds))
	avg := evalResult{
		Fitness:  total.Fitness / n,
		Survival: total.Survival / n,
		Quality:  total.Quality / n,
	}

	fe.mu.Lock()
	fe.bestFitness = min(fe.bestFitness, avg.Fitness)
	fe.lastResult = avg
	fe.mu.Unlock()

	return avg, nil
}

// runSimulation executes a single headless run. It stops as soon as either
// species dies out, since a one-species world cannot recover.
func (fe *FitnessEvaluator) runSimulation(ctx context.Context, x []float64, seed int64) (runResult, error) {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	result := runResult{survivalTicks: fe.maxTicks}
	extinct := false

	g, err := game.NewGameWithOptions(game.Options{
		Config:   cfg,
		Seed:     seed,
		MaxTicks: fe.maxTicks,
		StatsCallback: func(s telemetry.TickStats) {
			if extinct {
				return
			}
			if s.PopA == 0 || s.PopB == 0 {
				extinct = true
				result.survivalTicks = s.Tick
				cancel()
				return
			}
			if s.Tick > qualityWarmupTicks {
				result.popA = append(result.popA, float64(s.PopA))
				result.popB = append(result.popB, float64(s.PopB))
			}
		},
	})
	if err != nil {
		return runResult{}, err
	}
	defer g.Unload()

	if _, err := g.Run(runCtx); err != nil && !extinct {
		return runResult{}, err
	}
	return result, nil
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% bonus to differentiate
// configs with similar survival.
func computeFitness(survivalTicks int, quality float64) float64 {
	return -(float64(survivalTicks) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.5
	qualityWeightStability = 0.5

	targetRatio = 3.0 // species A per species B
)

// computeQuality scores coexistence ∈ [0, 1]: how close the A:B ratio stays
// to targetRatio and how little both populations swing.
func computeQuality(r runResult) float64 {
	if len(r.popA) == 0 {
		return 0
	}

	var ratioSum float64
	for i := range r.popA {
		logErr := math.Log(r.popA[i] / r.popB[i] / targetRatio)
		ratioSum += math.Exp(-logErr * logErr)
	}
	ratioScore := ratioSum / float64(len(r.popA))

	stabilityScore := 0.0
	if len(r.popA) >= 2 {
		cvA := cv(r.popA)
		cvB := cv(r.popB)
		stabilityScore = math.Exp(-(cvA*cvA + cvB*cvB))
	}

	return clamp01(qualityWeightRatio*ratioScore + qualityWeightStability*stabilityScore)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	mean, std := stat.MeanStdDev(values, nil)
	if mean == 0 || math.IsNaN(std) {
		return 0
	}
	return std / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return max(0, min(1, x))
}
