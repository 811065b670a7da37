package lsmtune

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKHybridCostTerms_AreFiniteAtFeasiblePoint(t *testing.T) {
	cm, err := NewCostModel(testProfile(), balancedWorkload())
	require.NoError(t, err)

	lCeil := cm.LCeil(10, 10)
	k := make([]float64, lCeil)
	for i := range k {
		k[i] = 4
	}

	assert.Greater(t, cm.Z0KHybrid(10, 10, k), 0.0)
	assert.Greater(t, cm.Z1KHybrid(10, 10, k), 0.0)
	assert.Greater(t, cm.QKHybrid(10, 10, k), 0.0)
	assert.Greater(t, cm.WKHybrid(10, 10, k), 0.0)
}

func TestQFixedCostTerms_ReduceToTieringAtQEqualsTMinusOne(t *testing.T) {
	cm, err := NewCostModel(testProfile(), balancedWorkload())
	require.NoError(t, err)

	h, tr := 10.0, 10.0
	q := tr - 1
	assert.InDelta(t, cm.Z0(h, tr, Tiering), cm.Z0QFixed(h, tr, q), 1e-6)
}

func TestYZHybridCostTerms_AreFiniteAtFeasiblePoint(t *testing.T) {
	cm, err := NewCostModel(testProfile(), balancedWorkload())
	require.NoError(t, err)

	y, z := 4.0, 2.0
	assert.Greater(t, cm.Z0YZHybrid(10, 10, y, z), 0.0)
	assert.Greater(t, cm.Z1YZHybrid(10, 10, y, z), 0.0)
	assert.Greater(t, cm.QYZHybrid(10, 10, y, z), 0.0)
	assert.Greater(t, cm.WYZHybrid(10, 10, y, z), 0.0)
}
