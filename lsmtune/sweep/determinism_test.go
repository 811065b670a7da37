package sweep

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robust-lsm/lsmtune/lsmtune/internal/testutil"
)

// TestSweep_Run_IsDeterministicAcrossRepeatedRuns pins the sweep's output to
// itself across repeated runs with the same configuration, the same property
// a golden-dataset comparison checks against a recorded baseline.
func TestSweep_Run_IsDeterministicAcrossRepeatedRuns(t *testing.T) {
	s := testSweep()

	first, err := s.Run()
	require.NoError(t, err)
	second, err := s.Run()
	require.NoError(t, err)
	require.Len(t, second, len(first))

	for i := range first {
		testutil.AssertFloat64Equal(t, "nominal_cost", first[i].NominalCost, second[i].NominalCost, 1e-12)
		testutil.AssertFloat64Equal(t, "robust_obj", first[i].RobustObj, second[i].RobustObj, 1e-12)
		testutil.AssertFloat64Equal(t, "robust_T", first[i].RobustT, second[i].RobustT, 1e-12)
	}
}
