package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robust-lsm/lsmtune/lsmtune"
)

func TestDriver_Score_ComputesKLAgainstReference(t *testing.T) {
	reference := lsmtune.Workload{Z0: 0.25, Z1: 0.25, Q: 0.25, W: 0.25}
	driver := NewDriver(reference, lsmtune.AllOps)

	samples := []lsmtune.Workload{reference, {Z0: 0.7, Z1: 0.1, Q: 0.1, W: 0.1}}
	scored := driver.Score(samples)

	require.Len(t, scored, 2)
	assert.InDelta(t, 0.0, scored[0].Rho, 1e-9)
	assert.Greater(t, scored[1].Rho, 0.0)
}

func TestDriver_Sessions_PartitionsByPredicate(t *testing.T) {
	reference := lsmtune.Workload{Z0: 0.25, Z1: 0.25, Q: 0.25, W: 0.25}
	driver := NewDriver(reference, lsmtune.AllOps)

	samples := []lsmtune.Workload{
		{Z0: 0.45, Z1: 0.45, Q: 0.05, W: 0.05}, // read-heavy
		{Z0: 0.05, Z1: 0.05, Q: 0.85, W: 0.05}, // range-heavy
		{Z0: 0.05, Z1: 0.05, Q: 0.05, W: 0.85}, // write-heavy
	}
	scored := driver.Score(samples)
	sessions := driver.Sessions(scored)

	require.Len(t, sessions, len(DefaultSessionPredicates))

	byName := make(map[string]Session, len(sessions))
	for _, s := range sessions {
		byName[s.Name] = s
	}

	assert.NotEmpty(t, byName["read-heavy"].Samples)
	assert.NotEmpty(t, byName["range-heavy"].Samples)
	assert.NotEmpty(t, byName["write-heavy"].Samples)
}

func TestDriver_Sessions_IsDeterministicForAFixedSeed(t *testing.T) {
	reference := lsmtune.Workload{Z0: 0.25, Z1: 0.25, Q: 0.25, W: 0.25}
	driver := NewDriver(reference, lsmtune.AllOps)
	driver.SessionSize = 3

	samples := make([]lsmtune.Workload, 0, 20)
	for i := 0; i < 20; i++ {
		samples = append(samples, lsmtune.Workload{Z0: 0.85, Z1: 0.05, Q: 0.05, W: 0.05})
	}
	scored := driver.Score(samples)

	a := driver.Sessions(scored)
	b := driver.Sessions(scored)
	assert.Equal(t, a, b)
}

func TestDriver_Sessions_DrawsWithReplacementWhenPoolSmallerThanSessionSize(t *testing.T) {
	reference := lsmtune.Workload{Z0: 0.25, Z1: 0.25, Q: 0.25, W: 0.25}
	driver := NewDriver(reference, lsmtune.AllOps)
	driver.SessionSize = 10

	samples := []lsmtune.Workload{{Z0: 0.9, Z1: 0.05, Q: 0.025, W: 0.025}}
	scored := driver.Score(samples)
	sessions := driver.Sessions(scored)

	for _, s := range sessions {
		if s.Name == "empty-read-heavy" {
			assert.Len(t, s.Samples, driver.SessionSize)
		}
	}
}
