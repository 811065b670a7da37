package lsmtune

import "fmt"

const nominalMaxFuncEvaluations = 2000

// NominalTuner minimizes the aggregate cost over (h, T) for exactly the
// expected workload carried by a CostModel, independently for each policy
// in {Leveling, Tiering}, and returns the cheaper of the two. Grounded on
// endure/lsm_tree/nominal.py's NominalWorkloadTuning.get_nominal_design.
type NominalTuner struct{}

// Tune solves the nominal subproblem. If policyFilter is non-nil, only that
// policy is solved; otherwise both are solved and the cheaper design wins.
// It fails with ErrOptimizationFailed only when every attempted policy
// converges to a non-finite cost.
func (NominalTuner) Tune(cm *CostModel, policyFilter *Policy) (Design, error) {
	policies := []Policy{Leveling, Tiering}
	if policyFilter != nil {
		policies = []Policy{*policyFilter}
	}

	bounds := []bound{
		{Lo: 0, Hi: cm.Profile.HUpperBound()},
		{Lo: tLowerLimit, Hi: tUpperLimit},
	}
	x0 := []float64{5, 20}

	best := Design{Cost: sentinelCost}
	found := false
	for _, policy := range policies {
		f := func(x []float64) float64 { return cm.Cost(x[0], x[1], policy) }
		x, _ := runMinimize(f, x0, bounds, nominalMaxFuncEvaluations)
		cost := cm.Cost(x[0], x[1], policy)
		if cost < best.Cost {
			best = NewDesign(cm.Profile, x[0], x[1], policy, cost)
			found = true
		}
	}

	if !found || best.Cost >= sentinelCost {
		return Design{}, fmt.Errorf("%w: no policy produced a finite nominal cost", ErrOptimizationFailed)
	}
	return best, nil
}
