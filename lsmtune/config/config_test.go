package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
system:
  n: 100000000
  e: 8192
  m: 8000000000
  b: 4
  s: 0.0000004
  phi: 1
  p: 4096
workload:
  expected_workloads:
    - {z0: 0.25, z1: 0.25, q: 0.25, w: 0.25}
memory:
  expected_memory_bits_per_element: [5, 10, 20]
uncertainty:
  rho_low: 0
  rho_high: 1
  rho_step: 0.5
  sample_count: 1000
app:
  data_dir: "./data"
`

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := t.TempDir() + "/config.yaml"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_ParsesWellFormedConfig(t *testing.T) {
	path := writeTemp(t, validYAML)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1e8, cfg.System.N)
	assert.Len(t, cfg.Workload.ExpectedWorkloads, 1)
	assert.Equal(t, []float64{5, 10, 20}, cfg.Memory.ExpectedMemoryBitsPerElement)
	assert.Equal(t, "./data", cfg.App.DataDir)
}

func TestLoad_RejectsUnknownField(t *testing.T) {
	path := writeTemp(t, validYAML+"\nbogus_key: true\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_RejectsMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
}

func TestValidate_RejectsEmptyWorkloadList(t *testing.T) {
	cfg := &Config{
		System: SystemConfig{N: 1e8, E: 8192, M: 8e9, B: 4, S: 4e-7, Phi: 1},
		Memory: MemoryConfig{ExpectedMemoryBitsPerElement: []float64{10}},
	}
	require.Error(t, cfg.Validate())
}

func TestValidate_RejectsRhoHighBelowRhoLow(t *testing.T) {
	cfg := &Config{
		System:   SystemConfig{N: 1e8, E: 8192, M: 8e9, B: 4, S: 4e-7, Phi: 1},
		Workload: WorkloadConfig{ExpectedWorkloads: []WorkloadEntry{{Z0: 0.25, Z1: 0.25, Q: 0.25, W: 0.25}}},
		Memory:   MemoryConfig{ExpectedMemoryBitsPerElement: []float64{10}},
		Uncertainty: UncertaintyConfig{
			RhoLow:  1,
			RhoHigh: 0,
		},
	}
	require.Error(t, cfg.Validate())
}

func TestUncertaintyConfig_RhoValues_ExpandsInclusiveRange(t *testing.T) {
	u := UncertaintyConfig{RhoLow: 0, RhoHigh: 1, RhoStep: 0.5}
	assert.Equal(t, []float64{0, 0.5, 1}, u.RhoValues())
}

func TestUncertaintyConfig_RhoValues_FallsBackToSingleValueWhenStepIsZero(t *testing.T) {
	u := UncertaintyConfig{RhoLow: 2, RhoHigh: 4, RhoStep: 0}
	assert.Equal(t, []float64{2}, u.RhoValues())
}
