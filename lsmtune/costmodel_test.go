package lsmtune

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() SystemProfile {
	return SystemProfile{N: 1e8, E: 8192, M: 8e9, B: 4, S: 4e-7, Phi: 1}
}

func balancedWorkload() Workload {
	return Workload{Z0: 0.25, Z1: 0.25, Q: 0.25, W: 0.25}
}

func TestNewCostModel_RejectsInvalidProfile(t *testing.T) {
	_, err := NewCostModel(SystemProfile{}, balancedWorkload())
	require.Error(t, err)
}

func TestNewCostModel_RejectsInvalidWorkload(t *testing.T) {
	_, err := NewCostModel(testProfile(), Workload{Z0: 2})
	require.Error(t, err)
}

func TestCostModel_Cost_IsFiniteAndPositiveAtFeasiblePoint(t *testing.T) {
	cm, err := NewCostModel(testProfile(), balancedWorkload())
	require.NoError(t, err)

	cost := cm.Cost(10, 10, Leveling)
	assert.Greater(t, cost, 0.0)
	assert.Less(t, cost, sentinelCost)
}

func TestCostModel_Cost_ReturnsSentinelAtInfeasiblePoint(t *testing.T) {
	cm, err := NewCostModel(testProfile(), balancedWorkload())
	require.NoError(t, err)

	assert.Equal(t, sentinelCost, cm.Cost(cm.Profile.HUpperBound()*10, 10, Leveling))
	assert.Equal(t, sentinelCost, cm.Cost(10, 1, Leveling))
}

func TestCostModel_Z0_IncreasesWithFewerBitsPerElement(t *testing.T) {
	cm, err := NewCostModel(testProfile(), balancedWorkload())
	require.NoError(t, err)

	lowH := cm.Z0(5, 10, Leveling)
	highH := cm.Z0(15, 10, Leveling)
	assert.Greater(t, lowH, highH, "a smaller Bloom filter budget should raise the empty-lookup I/O cost")
}

func TestCostModel_W_LevelingScalesWithTOverTwo(t *testing.T) {
	cm, err := NewCostModel(testProfile(), balancedWorkload())
	require.NoError(t, err)

	leveling := cm.W(10, 10, Leveling)
	tiering := cm.W(10, 10, Tiering)
	assert.Greater(t, leveling, tiering, "leveling's write cost carries an extra T/2 merge-fanout factor tiering lacks")
}

func TestCostModel_OpCosts_MatchesIndividualTermMethods(t *testing.T) {
	cm, err := NewCostModel(testProfile(), balancedWorkload())
	require.NoError(t, err)

	costs := cm.OpCosts(10, 10, Leveling)
	assert.Equal(t, cm.Z0(10, 10, Leveling), costs[0])
	assert.Equal(t, cm.Z1(10, 10, Leveling), costs[1])
	assert.Equal(t, cm.Q(10, 10, Leveling), costs[2])
	assert.Equal(t, cm.W(10, 10, Leveling), costs[3])
}

func TestCostModel_WithWorkload_LeavesProfileUnchanged(t *testing.T) {
	cm, err := NewCostModel(testProfile(), balancedWorkload())
	require.NoError(t, err)

	writeHeavy := Workload{Z0: 0.1, Z1: 0.1, Q: 0.1, W: 0.7}
	cm2 := cm.WithWorkload(writeHeavy)
	assert.Equal(t, cm.Profile, cm2.Profile)
	assert.Equal(t, writeHeavy, cm2.Workload)
	assert.NotEqual(t, cm.Cost(10, 10, Leveling), cm2.Cost(10, 10, Leveling))
}
