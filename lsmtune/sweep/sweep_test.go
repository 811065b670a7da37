package sweep

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robust-lsm/lsmtune/lsmtune"
)

func testSweep() Sweep {
	return Sweep{
		BaseProfile: lsmtune.SystemProfile{N: 1e8, E: 8192, B: 4, S: 4e-7, Phi: 1},
		ExpectedWorkloads: []lsmtune.Workload{
			{Z0: 0.25, Z1: 0.25, Q: 0.25, W: 0.25},
			{Z0: 0.1, Z1: 0.1, Q: 0.1, W: 0.7},
		},
		MemoryBitsPerElement: []float64{10, 20},
		RhoList:              []float64{0, 0.5},
	}
}

func TestSweep_Run_RejectsEmptyWorkloadList(t *testing.T) {
	s := testSweep()
	s.ExpectedWorkloads = nil
	_, err := s.Run()
	require.Error(t, err)
}

func TestSweep_Run_ProducesCartesianProductRowCount(t *testing.T) {
	s := testSweep()
	rows, err := s.Run()
	require.NoError(t, err)
	assert.Len(t, rows, len(s.ExpectedWorkloads)*len(s.MemoryBitsPerElement)*len(s.RhoList))
}

func TestSweep_Run_OrdersRowsByWorkloadThenMemoryThenRho(t *testing.T) {
	s := testSweep()
	rows, err := s.Run()
	require.NoError(t, err)

	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if cur.WorkloadIdx != prev.WorkloadIdx {
			assert.Greater(t, cur.WorkloadIdx, prev.WorkloadIdx)
			continue
		}
		if cur.M != prev.M {
			assert.Greater(t, cur.M, prev.M)
			continue
		}
		assert.GreaterOrEqual(t, cur.Rho, prev.Rho)
	}
}

func TestSweep_Run_NominalOnlySkipsRobustFields(t *testing.T) {
	s := testSweep()
	s.NominalOnly = true
	rows, err := s.Run()
	require.NoError(t, err)
	assert.Len(t, rows, len(s.ExpectedWorkloads)*len(s.MemoryBitsPerElement))
	for _, row := range rows {
		assert.Zero(t, row.RobustCost)
	}
}

func TestSweep_Run_ParallelMatchesSequentialRowSet(t *testing.T) {
	sequential := testSweep()
	parallel := testSweep()
	parallel.Parallel = true

	seqRows, err := sequential.Run()
	require.NoError(t, err)
	parRows, err := parallel.Run()
	require.NoError(t, err)

	assert.Equal(t, seqRows, parRows)
}

func TestWriteCSVThenReadCSV_RoundTrips(t *testing.T) {
	s := testSweep()
	rows, err := s.Run()
	require.NoError(t, err)

	dir := t.TempDir()
	path := dir + "/sweep.csv"
	require.NoError(t, WriteCSV(path, rows))

	readBack, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, readBack, len(rows))

	for i := range rows {
		assert.Equal(t, rows[i].WorkloadIdx, readBack[i].WorkloadIdx)
		assert.InDelta(t, rows[i].NominalCost, readBack[i].NominalCost, 1e-9)
		assert.InDelta(t, rows[i].RobustObj, readBack[i].RobustObj, 1e-9)
	}

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}
