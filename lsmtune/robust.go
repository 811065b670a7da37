package lsmtune

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

const (
	robustMaxFuncEvaluations = 4000
	lambdaLowerLimit         = 0.1
	tieringLambdaInit        = 1e20
)

// klConjugate is φ*(s) = exp(s) - 1, the convex conjugate of the
// Kullback-Leibler divergence generator used in the dual objective.
func klConjugate(s float64) float64 {
	return math.Exp(s) - 1
}

// RobustTuner minimizes the KL-divergence-robust dual Lagrangian over
// (h, T, λ, η) for a given uncertainty radius ρ, independently for each
// policy, and returns the design with the lower dual objective. Grounded on
// endure/robust/workload_uncertainty.py's WorkloadUncertainty class.
type RobustTuner struct{}

// dualObjective computes g(h,T,λ,η) = η + ρλ + λ·Σ_k w_k·φ*((C_k-η)/λ) for
// a given policy and CostModel.
func dualObjective(cm *CostModel, policy Policy, rho float64) func(x []float64) float64 {
	weights := cm.Workload.Components()
	return func(x []float64) float64 {
		h, t, lambda, eta := x[0], x[1], x[2], x[3]
		if lambda <= 0 {
			return sentinelCost
		}
		costs := cm.OpCosts(h, t, policy)
		total := 0.0
		for k, c := range costs {
			if c >= sentinelCost {
				return sentinelCost
			}
			total += weights[k] * klConjugate((c-eta)/lambda)
		}
		return eta + rho*lambda + lambda*total
	}
}

// Tune solves the robust subproblem for uncertainty radius rho. If
// policyFilter is non-nil only that policy is solved. warmStart, if
// non-nil, overrides the (h,T) starting point with its T and M_filt/N.
// Fails with ErrOptimizationFailed only when every attempted policy
// converges to a non-finite objective.
func (RobustTuner) Tune(cm *CostModel, rho float64, policyFilter *Policy, warmStart *Design) (Design, error) {
	policies := []Policy{Leveling, Tiering}
	if policyFilter != nil {
		policies = []Policy{*policyFilter}
	}

	hUpper := cm.Profile.HUpperBound()
	bounds := []bound{
		{Lo: 1, Hi: hUpper},
		{Lo: tLowerLimit, Hi: tUpperLimit},
		{Lo: lambdaLowerLimit, Hi: math.Inf(1)},
		{Lo: math.Inf(-1), Hi: math.Inf(1)},
	}

	hInit, tInit := 5.0, 20.0
	if warmStart != nil {
		hInit, tInit = warmStart.H, warmStart.T
	}

	best := Design{Obj: math.Inf(1), Cost: sentinelCost}
	found := false
	for _, policy := range policies {
		lambdaInit := 1.0
		if policy == Tiering && warmStart == nil {
			lambdaInit = tieringLambdaInit
		}
		x0 := []float64{hInit, tInit, lambdaInit, 1.0}

		f := dualObjective(cm, policy, rho)
		x, status := runMinimize(f, x0, bounds, robustMaxFuncEvaluations)
		obj := f(x)
		cost := cm.Cost(x[0], x[1], policy)

		if obj < best.Obj {
			best = Design{
				T:        x[1],
				H:        x[0],
				Policy:   policy,
				MFilt:    x[0] * cm.Profile.N,
				MBuff:    cm.Profile.M - x[0]*cm.Profile.N,
				Cost:     cost,
				Lambda:   x[2],
				Eta:      x[3],
				ExitMode: exitModeCode(status),
				Obj:      obj,
			}
			found = true
		}
	}

	if !found || math.IsInf(best.Obj, 1) || math.IsNaN(best.Obj) {
		return Design{}, fmt.Errorf("%w: no policy produced a finite robust objective", ErrOptimizationFailed)
	}
	return best, nil
}

// exitModeCode flattens a gonum optimize.Status into the integer exit_mode
// the CSV schema carries, matching the reference's scipy `sol.status`
// convention of 0 == converged, nonzero == not.
func exitModeCode(status optimize.Status) int {
	if status == optimize.Success || status == optimize.FunctionConvergence ||
		status == optimize.MethodConverge {
		return 0
	}
	return 1
}
