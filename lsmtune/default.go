package lsmtune

// DefaultDesign returns the reference implementation's fixed placeholder
// design (T=10, h=10, Leveling) evaluated against profile, grounded on
// endure/lsm_tree/default.py's DefaultWorkloadTuning. It serves as a sanity
// baseline in tests and as the value a sweep row falls back to when both
// optimizer subproblems for a (workload, memory budget) pair fail and
// retain their sentinel cost.
func DefaultDesign(profile SystemProfile, workload Workload) Design {
	const defaultH, defaultT = 10.0, 10.0
	cm := &CostModel{Profile: profile, Workload: workload}
	cost := cm.Cost(defaultH, defaultT, Leveling)
	return NewDesign(profile, defaultH, defaultT, Leveling, cost)
}
