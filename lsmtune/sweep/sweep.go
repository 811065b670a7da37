// Package sweep implements the Cartesian tuning-sweep driver (C5): for
// every (expected workload, memory-bits-per-element, ρ) combination it
// invokes the nominal and robust tuners and emits one row per combination,
// plus CSV serialization of the resulting table.
//
// Grounded on endure/jobs/create_workload_uncertainty_tunings.py
// (CreateWorkloadUncertaintyTunings) and
// endure/jobs/create_workload_nominal_tunings.py (CreateNominalWorkloadTunings).
package sweep

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/robust-lsm/lsmtune/lsmtune"
)

// Row is one line of the sweep's output table, matching the CSV schema in
// SPEC_FULL.md §12.2 column-for-column.
type Row struct {
	WorkloadIdx int
	Workload    lsmtune.Workload
	N           float64
	M           float64
	Rho         float64

	NominalMFilt            float64
	NominalMBuff            float64
	NominalT                float64
	NominalCost             float64
	NominalIsLevelingPolicy bool

	RobustMFilt            float64
	RobustMBuff            float64
	RobustT                float64
	RobustCost             float64
	RobustIsLevelingPolicy bool
	RobustExitMode         int
	RobustLambda           float64
	RobustEta              float64
	RobustObj              float64
}

// Sweep configures and runs the tuning sweep.
type Sweep struct {
	// BaseProfile supplies every SystemProfile field except M, which is
	// overridden per memory-bits-per-element value as m*N.
	BaseProfile lsmtune.SystemProfile

	ExpectedWorkloads    []lsmtune.Workload
	MemoryBitsPerElement []float64
	RhoList              []float64

	// NominalOnly skips the robust tuner entirely, matching
	// endure/jobs/create_workload_nominal_tunings.py's job mode.
	NominalOnly bool

	// Parallel runs one worker per expected workload, cloning the
	// CostModel per worker; output rows are always sorted back into the
	// deterministic Cartesian order (§5 of SPEC_FULL.md) regardless.
	Parallel bool
}

// Run executes the sweep and returns its rows in deterministic order:
// outer loop workload, middle loop memory budget, inner loop ρ.
func (s Sweep) Run() ([]Row, error) {
	if len(s.ExpectedWorkloads) == 0 {
		return nil, fmt.Errorf("%w: sweep requires at least one expected workload", lsmtune.ErrInvalidConfig)
	}
	if len(s.MemoryBitsPerElement) == 0 {
		return nil, fmt.Errorf("%w: sweep requires at least one memory-bits-per-element value", lsmtune.ErrInvalidConfig)
	}
	if !s.NominalOnly && len(s.RhoList) == 0 {
		return nil, fmt.Errorf("%w: sweep requires at least one rho value unless NominalOnly", lsmtune.ErrInvalidConfig)
	}

	if !s.Parallel {
		var rows []Row
		for idx, w := range s.ExpectedWorkloads {
			rows = append(rows, s.runOneWorkload(idx, w)...)
		}
		return rows, nil
	}

	results := make([][]Row, len(s.ExpectedWorkloads))
	var wg sync.WaitGroup
	for idx, w := range s.ExpectedWorkloads {
		wg.Add(1)
		go func(idx int, w lsmtune.Workload) {
			defer wg.Done()
			results[idx] = s.runOneWorkload(idx, w)
		}(idx, w)
	}
	wg.Wait()

	var rows []Row
	for _, r := range results {
		rows = append(rows, r...)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].WorkloadIdx != rows[j].WorkloadIdx {
			return rows[i].WorkloadIdx < rows[j].WorkloadIdx
		}
		if rows[i].M != rows[j].M {
			return rows[i].M < rows[j].M
		}
		return rows[i].Rho < rows[j].Rho
	})
	return rows, nil
}

// runOneWorkload produces every row for a single expected workload across
// the full memory-budget × ρ grid.
func (s Sweep) runOneWorkload(idx int, w lsmtune.Workload) []Row {
	var rows []Row
	logrus.Infof("sweep: workload %d (%+v)", idx, w)

	for _, bpe := range s.MemoryBitsPerElement {
		profile := s.BaseProfile
		profile.M = bpe * profile.N

		cm, err := lsmtune.NewCostModel(profile, w)
		if err != nil {
			logrus.Warnf("sweep: workload %d, bpe=%g: %v", idx, bpe, err)
			continue
		}

		nominal, nominalErr := lsmtune.NominalTuner{}.Tune(cm, nil)
		if nominalErr != nil {
			logrus.Warnf("sweep: workload %d, bpe=%g: nominal tuning failed: %v", idx, bpe, nominalErr)
			nominal = lsmtune.DefaultDesign(profile, w)
		}

		if s.NominalOnly {
			rows = append(rows, Row{
				WorkloadIdx:             idx,
				Workload:                w,
				N:                       profile.N,
				M:                       profile.M,
				NominalMFilt:            nominal.MFilt,
				NominalMBuff:            nominal.MBuff,
				NominalT:                nominal.T,
				NominalCost:             nominal.Cost,
				NominalIsLevelingPolicy: nominal.Policy.IsLeveling(),
			})
			continue
		}

		for _, rho := range s.RhoList {
			robust, robustErr := lsmtune.RobustTuner{}.Tune(cm, rho, nil, &nominal)
			exitMode := 0
			if robustErr != nil {
				logrus.Warnf("sweep: workload %d, bpe=%g, rho=%g: robust tuning failed: %v", idx, bpe, rho, robustErr)
				robust = lsmtune.DefaultDesign(profile, w)
				exitMode = 1
			} else {
				exitMode = robust.ExitMode
			}

			rows = append(rows, Row{
				WorkloadIdx:             idx,
				Workload:                w,
				N:                       profile.N,
				M:                       profile.M,
				Rho:                     rho,
				NominalMFilt:            nominal.MFilt,
				NominalMBuff:            nominal.MBuff,
				NominalT:                nominal.T,
				NominalCost:             nominal.Cost,
				NominalIsLevelingPolicy: nominal.Policy.IsLeveling(),
				RobustMFilt:             robust.MFilt,
				RobustMBuff:             robust.MBuff,
				RobustT:                 robust.T,
				RobustCost:              robust.Cost,
				RobustIsLevelingPolicy:  robust.Policy.IsLeveling(),
				RobustExitMode:          exitMode,
				RobustLambda:            robust.Lambda,
				RobustEta:               robust.Eta,
				RobustObj:               robust.Obj,
			})
		}
	}
	return rows
}
