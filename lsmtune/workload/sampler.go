// Package workload draws workloads from the probability simplex, scores
// their KL divergence from a reference, and
// partitions sampled workloads into labeled evaluation sessions.
//
// Grounded on endure/jobs/sample_uncertain_workloads.py (SampleUncertainWorkloads)
// and the session-partitioning consumers implied by
// endure/jobs/create_workload_uncertainty_tunings.py.
package workload

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/robust-lsm/lsmtune/lsmtune"
)

// precision is the number of decimal places workload components are rounded
// to after normalization, matching the reference's PRECISION=4.
const precision = 4

// DefaultSeed is the sampler's deterministic default seed (the reference
// always calls np.random.seed(0) unless told otherwise).
const DefaultSeed = 0

// rngForSeed returns a *rand.Rand for the sampler's deterministic draws.
// Isolated in its own function (rather than a bare rand.Seed/rand.Intn call)
// so a future caller needing multiple independent sample streams can derive
// them from distinct seeds without touching global RNG state.
func rngForSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Sampler draws workloads from the 4-simplex with a deterministic seed.
type Sampler struct {
	Seed int64
}

// NewSampler returns a Sampler using DefaultSeed.
func NewSampler() Sampler { return Sampler{Seed: DefaultSeed} }

// Sample draws count workloads uniformly from the simplex restricted to the
// operation classes enabled by mask: four independent integers in [0,99],
// masked components zeroed, normalized to sum to 1, then rounded to
// `precision` decimals. Re-normalization after rounding is intentionally
// skipped — the rounding is presentational and downstream consumers
// tolerate the resulting small drift.
//
// Fails with lsmtune.ErrDomain if mask has no enabled component.
func (s Sampler) Sample(count int, mask lsmtune.OpMask) ([]lsmtune.Workload, error) {
	if mask.Count() == 0 {
		return nil, fmt.Errorf("%w: sampler mask must have at least one enabled operation", lsmtune.ErrDomain)
	}

	rng := rngForSeed(s.Seed)
	draw := distuv.Uniform{Min: 0, Max: 100, Src: rng}

	samples := make([]lsmtune.Workload, count)
	for i := 0; i < count; i++ {
		raw := make([]float64, 4)
		for k := 0; k < 4; k++ {
			if !mask[k] {
				continue
			}
			raw[k] = float64(int(draw.Rand()))
		}
		total := floats.Sum(raw)
		if total > 0 {
			floats.Scale(1/total, raw)
		}
		for k := range raw {
			raw[k] = roundTo(raw[k], precision)
		}
		samples[i] = lsmtune.WorkloadFromComponents(raw)
	}
	return samples, nil
}

// roundTo rounds v to n decimal places.
func roundTo(v float64, n int) float64 {
	scale := 1.0
	for i := 0; i < n; i++ {
		scale *= 10
	}
	return float64(int64(v*scale+0.5)) / scale
}

// KL computes the masked KL divergence D_KL(from‖to) = Σ_k from_k·(ln
// from_k − ln to_k), dropping components outside mask before summing, using
// the 0·ln0≡0 convention (gonum's stat.KullbackLeibler already implements
// this convention, which is why it is used directly rather than a
// hand-rolled sum).
func KL(from, to lsmtune.Workload, mask lsmtune.OpMask) float64 {
	fc, tc := from.Components(), to.Components()
	var p, q []float64
	for i := range mask {
		if mask[i] {
			p = append(p, fc[i])
			q = append(q, tc[i])
		}
	}
	return stat.KullbackLeibler(p, q)
}
