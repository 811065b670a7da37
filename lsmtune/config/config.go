// Package config loads and validates the YAML document that drives a
// tuning sweep, following sim/bundle.go's LoadPolicyBundle pattern: strict
// decoding via gopkg.in/yaml.v3 with KnownFields(true), plus a Validate
// method that rejects out-of-range/NaN/Inf numeric fields.
package config

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/robust-lsm/lsmtune/lsmtune"
)

// SystemConfig mirrors lsmtune.SystemProfile plus the page size P, which
// passes through to external collaborators but plays no role in the cost
// model itself.
type SystemConfig struct {
	N   float64 `yaml:"n"`
	E   float64 `yaml:"e"`
	M   float64 `yaml:"m"`
	B   float64 `yaml:"b"`
	S   float64 `yaml:"s"`
	Phi float64 `yaml:"phi"`
	P   float64 `yaml:"p"`
}

// Profile converts the YAML system block into a lsmtune.SystemProfile.
func (c SystemConfig) Profile() lsmtune.SystemProfile {
	return lsmtune.SystemProfile{N: c.N, E: c.E, M: c.M, B: c.B, S: c.S, Phi: c.Phi}
}

// WorkloadEntry is one expected-workload row in the YAML document.
type WorkloadEntry struct {
	Z0 float64 `yaml:"z0"`
	Z1 float64 `yaml:"z1"`
	Q  float64 `yaml:"q"`
	W  float64 `yaml:"w"`
}

// Workload converts a YAML workload entry into a lsmtune.Workload.
func (w WorkloadEntry) Workload() lsmtune.Workload {
	return lsmtune.Workload{Z0: w.Z0, Z1: w.Z1, Q: w.Q, W: w.W}
}

// WorkloadConfig is the `workload` top-level YAML key.
type WorkloadConfig struct {
	ExpectedWorkloads []WorkloadEntry `yaml:"expected_workloads"`
}

// MemoryConfig is the `memory` top-level YAML key.
type MemoryConfig struct {
	ExpectedMemoryBitsPerElement []float64 `yaml:"expected_memory_bits_per_element"`
}

// UncertaintyConfig is the `uncertainty` top-level YAML key, describing the
// ρ sweep range and the sample count used by C4/C6.
type UncertaintyConfig struct {
	RhoLow      float64 `yaml:"rho_low"`
	RhoHigh     float64 `yaml:"rho_high"`
	RhoStep     float64 `yaml:"rho_step"`
	SampleCount int     `yaml:"sample_count"`
}

// RhoValues expands RhoLow..RhoHigh (inclusive) in RhoStep increments.
func (u UncertaintyConfig) RhoValues() []float64 {
	if u.RhoStep <= 0 {
		return []float64{u.RhoLow}
	}
	var values []float64
	for rho := u.RhoLow; rho <= u.RhoHigh+1e-9; rho += u.RhoStep {
		values = append(values, rho)
	}
	return values
}

// AppConfig is the `app` top-level YAML key: paths consumed by the CLI and
// by the out-of-scope external collaborators (lsmtune/collab).
type AppConfig struct {
	DataDir       string `yaml:"data_dir"`
	DatabasePath  string `yaml:"database_path"`
	BuilderPath   string `yaml:"builder_path"`
	ExecutionPath string `yaml:"execution_path"`
	KeyFilePath   string `yaml:"key_file_path"`
}

// Config is the full YAML document, matching SPEC_FULL.md §12.1.
type Config struct {
	System      SystemConfig      `yaml:"system"`
	Workload    WorkloadConfig    `yaml:"workload"`
	Memory      MemoryConfig      `yaml:"memory"`
	Uncertainty UncertaintyConfig `yaml:"uncertainty"`
	App         AppConfig         `yaml:"app"`
}

// Load reads and strictly parses a YAML config file at path, then validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tuning config: %w", err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing tuning config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects missing system parameters, empty workload/memory lists,
// non-finite numeric fields, and an invalid uncertainty range.
func (c *Config) Validate() error {
	if err := c.System.Profile().Validate(); err != nil {
		return fmt.Errorf("%w: invalid system config: %v", lsmtune.ErrInvalidConfig, err)
	}
	if len(c.Workload.ExpectedWorkloads) == 0 {
		return fmt.Errorf("%w: workload.expected_workloads must list at least one workload", lsmtune.ErrInvalidConfig)
	}
	for i, w := range c.Workload.ExpectedWorkloads {
		if err := w.Workload().Validate(); err != nil {
			return fmt.Errorf("%w: workload.expected_workloads[%d]: %v", lsmtune.ErrInvalidConfig, i, err)
		}
	}
	if len(c.Memory.ExpectedMemoryBitsPerElement) == 0 {
		return fmt.Errorf("%w: memory.expected_memory_bits_per_element must list at least one value", lsmtune.ErrInvalidConfig)
	}
	for i, bpe := range c.Memory.ExpectedMemoryBitsPerElement {
		if err := validateFloat(fmt.Sprintf("memory.expected_memory_bits_per_element[%d]", i), bpe); err != nil {
			return err
		}
	}
	if err := validateFloat("uncertainty.rho_low", c.Uncertainty.RhoLow); err != nil {
		return err
	}
	if err := validateFloat("uncertainty.rho_high", c.Uncertainty.RhoHigh); err != nil {
		return err
	}
	if c.Uncertainty.RhoHigh < c.Uncertainty.RhoLow {
		return fmt.Errorf("%w: uncertainty.rho_high must be >= rho_low", lsmtune.ErrInvalidConfig)
	}
	if c.Uncertainty.SampleCount < 0 {
		return fmt.Errorf("%w: uncertainty.sample_count must be non-negative", lsmtune.ErrInvalidConfig)
	}
	return nil
}

// validateFloat rejects NaN, Inf, and negative values, matching
// sim/bundle.go's validateFloat helper.
func validateFloat(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %v", lsmtune.ErrInvalidConfig, name, v)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must be non-negative, got %v", lsmtune.ErrInvalidConfig, name, v)
	}
	return nil
}
