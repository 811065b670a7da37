package lsmtune

import "errors"

// Error taxonomy. Each sentinel is wrapped with fmt.Errorf("%w: ...", Err...)
// at the point of failure so callers can classify with errors.Is.
//
//   - ErrDomain: M_buff(h) <= 0, a workload off the simplex, or an empty
//     operation mask.
//   - ErrNumerical: NaN/Inf surfaced from a cost term at a feasible point.
//     Normally recovered locally by the optimizers (the sentinel cost drives
//     the solver away) and never returned; exported so a cost-model caller
//     outside a tuner can still classify the failure.
//   - ErrOptimizationFailed: both policy subproblems converged to a
//     non-finite cost, or the solver's bounds were infeasible.
//   - ErrInvalidConfig: configuration is missing required fields or has
//     ill-typed values; this aborts at initialization rather than
//     propagating into a sweep row.
var (
	ErrDomain             = errors.New("domain error")
	ErrNumerical          = errors.New("numerical error")
	ErrOptimizationFailed = errors.New("optimization failed")
	ErrInvalidConfig      = errors.New("invalid config")
)
