package lsmtune

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/optimize"
)

func TestRobustTuner_Tune_ReturnsFiniteObjective(t *testing.T) {
	cm, err := NewCostModel(testProfile(), balancedWorkload())
	require.NoError(t, err)

	design, err := RobustTuner{}.Tune(cm, 0.5, nil, nil)
	require.NoError(t, err)
	assert.Less(t, design.Obj, sentinelCost)
	assert.GreaterOrEqual(t, design.Lambda, lambdaLowerLimit)
}

func TestRobustTuner_Tune_ExpectedWorkloadCostAtLeastNominalCost(t *testing.T) {
	profile := testProfile()
	workload := balancedWorkload()
	cm, err := NewCostModel(profile, workload)
	require.NoError(t, err)

	nominal, err := NominalTuner{}.Tune(cm, nil)
	require.NoError(t, err)

	robust, err := RobustTuner{}.Tune(cm, 0.5, nil, &nominal)
	require.NoError(t, err)

	robustCostOnExpected := cm.Cost(robust.H, robust.T, robust.Policy)
	assert.GreaterOrEqual(t, robustCostOnExpected, nominal.Cost-1e-6,
		"a design hedging against perturbed workloads should not beat the workload-specific optimum on the expected workload itself")
}

func TestRobustTuner_Tune_ObjectiveMonotoneNondecreasingInRho(t *testing.T) {
	cm, err := NewCostModel(testProfile(), balancedWorkload())
	require.NoError(t, err)

	nominal, err := NominalTuner{}.Tune(cm, nil)
	require.NoError(t, err)

	low, err := RobustTuner{}.Tune(cm, 0.1, nil, &nominal)
	require.NoError(t, err)
	high, err := RobustTuner{}.Tune(cm, 1.0, nil, &nominal)
	require.NoError(t, err)

	assert.LessOrEqual(t, low.Obj, high.Obj+1e-3,
		"widening the uncertainty ball should never lower the worst-case dual objective")
}

func TestKLConjugate_IsZeroAtOrigin(t *testing.T) {
	assert.InDelta(t, 0.0, klConjugate(0), 1e-12)
}

func TestExitModeCode_MapsConvergedStatusesToZero(t *testing.T) {
	assert.Equal(t, 0, exitModeCode(optimize.Success))
	assert.Equal(t, 0, exitModeCode(optimize.FunctionConvergence))
	assert.Equal(t, 1, exitModeCode(optimize.Failure))
}
