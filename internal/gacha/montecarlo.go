package gacha

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrSimulation is returned when a trial cannot produce its metric.
var ErrSimulation = errors.New("simulation failed")

// TrialGoal selects what the simulation measures per trial.
type TrialGoal string

const (
	// Draws until the first top-tier result.
	GoalFirstTop TrialGoal = "first_top"
	// Draws until the first featured top-tier result (respects the 50/50 guarantee).
	GoalFirstFeatured TrialGoal = "first_featured"
	// Given a fixed budget N, count top-tier results.
	GoalFixedBudget TrialGoal = "fixed_budget"
)

// SimParams describes the mechanics for one simulation run.
type SimParams struct {
	Banner Banner
	// Starting state for every trial, e.g. carried-over pity.
	Start PityState
	// Upper bound on draws per trial for the open-ended goals; <= 0 means 10 * HardPity.
	MaxDraws int
}

// SimBudget controls the number of draws used in GoalFixedBudget.
type SimBudget struct {
	NumDraws int // number of draws in one trial
}

// Stats summarizes simulation results.
type Stats struct {
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
	// Optional: raw samples if caller needs histograms/exports
	Samples []int `json:"-"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	// mean
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)
	stddev := math.Sqrt(variance)

	// percentiles
	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 {
			return float64(cp[0])
		}
		if p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  stddev,
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// simulateOne returns the primary metric for one trial depending on the goal.
// - GoalFirstTop: number of draws until the first top result
// - GoalFirstFeatured: number of draws until the first featured top result
// - GoalFixedBudget: number of top results within budget.NumDraws
func simulateOne(e *Engine, p SimParams, goal TrialGoal, budget *SimBudget) (int, error) {
	state := p.Start
	limit := p.MaxDraws
	if limit <= 0 {
		limit = 10 * p.Banner.HardPity
	}

	switch goal {
	case GoalFirstTop, GoalFirstFeatured:
		for draws := 1; draws <= limit; draws++ {
			var res DrawResult
			res, state = e.Draw(p.Banner, state)
			if res.Tier != TierTop {
				continue
			}
			if goal == GoalFirstTop || res.Featured || !p.Banner.HasFeaturedTop() {
				return draws, nil
			}
		}
		return 0, fmt.Errorf("%w: no result within %d draws", ErrSimulation, limit)

	case GoalFixedBudget:
		if budget == nil || budget.NumDraws <= 0 {
			return 0, nil
		}
		count := 0
		for i := 0; i < budget.NumDraws; i++ {
			var res DrawResult
			res, state = e.Draw(p.Banner, state)
			if res.Tier == TierTop {
				count++
			}
		}
		return count, nil
	}

	return 0, fmt.Errorf("%w: unknown goal %q", ErrSimulation, goal)
}

// RunMonteCarlo repeats trials and returns summary stats.
// goal determines what metric is recorded per trial.
func RunMonteCarlo(e *Engine, p SimParams, goal TrialGoal, trials int, budget *SimBudget) (Stats, error) {
	if trials <= 0 {
		return Stats{}, nil
	}
	if err := ValidateBanner(p.Banner); err != nil {
		return Stats{}, err
	}
	samples := make([]int, trials)
	for i := 0; i < trials; i++ {
		v, err := simulateOne(e, p, goal, budget)
		if err != nil {
			return Stats{}, err
		}
		samples[i] = v
	}
	return calcStats(samples), nil
}
