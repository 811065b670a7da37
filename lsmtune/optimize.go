package lsmtune

import (
	"math"

	"gonum.org/v1/gonum/optimize"
)

// The reference tuners solve their (h,T[,λ,η]) subproblems with SciPy's
// SLSQP, a bound-constrained sequential-quadratic-programming method. Go's
// ecosystem has no maintained SQP-with-bounds implementation, so bounds are
// enforced with a smooth penalty added to the objective and the resulting
// unconstrained problem is handed to gonum's derivative-free Nelder-Mead —
// the one gonum/optimize method that tolerates an objective containing a
// hard sentinel value (CostModel.Cost's infeasible-point return) without a
// well-defined gradient at the boundary. See DESIGN.md.

// bound is an inclusive [Lo, Hi] box constraint on one free variable.
type bound struct {
	Lo, Hi float64
}

// penalty returns a smooth, strictly-positive cost added for every unit a
// component of x lies outside its bound, scaled so it dominates any
// realistic cost-model value well before the sentinel cost is reached.
func penalty(x []float64, bounds []bound) float64 {
	const weight = 1e12
	total := 0.0
	for i, b := range bounds {
		if x[i] < b.Lo {
			d := b.Lo - x[i]
			total += weight * d * d
		} else if x[i] > b.Hi {
			d := x[i] - b.Hi
			total += weight * d * d
		}
	}
	return total
}

// clampToBounds projects x onto the box defined by bounds; used to report a
// feasible solution even if the optimizer's final iterate drifted slightly
// outside due to the penalty's finite slope.
func clampToBounds(x []float64, bounds []bound) []float64 {
	out := make([]float64, len(x))
	for i, b := range bounds {
		out[i] = math.Min(math.Max(x[i], b.Lo), b.Hi)
	}
	return out
}

// minimizeSettings are shared across the nominal and robust subproblems.
// The reference's ftol (1e-6 nominal, 1e-12 robust) has no direct
// Nelder-Mead analog; FuncEvaluations bounds the work instead.
func minimizeSettings(maxFuncEvaluations int) *optimize.Settings {
	return &optimize.Settings{
		FuncEvaluations: maxFuncEvaluations,
	}
}

// runMinimize solves min f(x) subject to box constraints via penalized
// Nelder-Mead, starting at x0. It never returns an error: a failed or
// non-converging run still yields gonum's best-found iterate, and the
// caller is responsible for judging the resulting cost (OptimizationFailed
// is a property of "both policies produced a non-finite cost", not of the
// solver's own exit status).
func runMinimize(f func(x []float64) float64, x0 []float64, bounds []bound, maxFuncEvaluations int) (x []float64, status optimize.Status) {
	penalized := func(x []float64) float64 {
		v := f(x)
		if math.IsInf(v, 0) || math.IsNaN(v) {
			v = sentinelCost
		}
		return v + penalty(x, bounds)
	}

	problem := optimize.Problem{Func: penalized}
	result, err := optimize.Minimize(problem, x0, minimizeSettings(maxFuncEvaluations), &optimize.NelderMead{})
	if err != nil || result == nil {
		return clampToBounds(x0, bounds), optimize.Failure
	}
	return clampToBounds(result.X, bounds), result.Status
}
