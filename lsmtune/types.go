package lsmtune

import "fmt"

const (
	bitsInByte    = 8.0
	oneMiBInBits  = 1024 * 1024 * 8
	simplexTol    = 1e-6
	tUpperLimit   = 100.0
	tLowerLimit   = 2.0
)

// SystemProfile describes the fixed hardware/workload-independent shape of
// an LSM tree: entry count, entry size, memory budget, page capacity, range
// selectivity, and compaction overhead. It is immutable for the lifetime of
// a CostModel.
type SystemProfile struct {
	N   float64 // number of entries
	E   float64 // entry size, bits
	M   float64 // total memory budget, bits
	B   float64 // entries per page (block capacity)
	S   float64 // range-query selectivity, [0,1]
	Phi float64 // compaction / write-amplification overhead, >= 0
}

// Validate checks the SystemProfile invariants from the data model: N>0,
// E>0, M>0, B>=1, 0<=S<=1, Phi>=0. It does not check M>h·N, which is
// h-dependent and enforced per bits-per-element value by MBuff.
func (p SystemProfile) Validate() error {
	switch {
	case p.N <= 0:
		return fmt.Errorf("%w: N must be positive, got %g", ErrDomain, p.N)
	case p.E <= 0:
		return fmt.Errorf("%w: E must be positive, got %g", ErrDomain, p.E)
	case p.M <= 0:
		return fmt.Errorf("%w: M must be positive, got %g", ErrDomain, p.M)
	case p.B < 1:
		return fmt.Errorf("%w: B must be at least 1, got %g", ErrDomain, p.B)
	case p.S < 0 || p.S > 1:
		return fmt.Errorf("%w: S must be in [0,1], got %g", ErrDomain, p.S)
	case p.Phi < 0:
		return fmt.Errorf("%w: Phi must be non-negative, got %g", ErrDomain, p.Phi)
	}
	return nil
}

// HUpperBound returns the largest bits-per-element value that still leaves
// at least one MiB of buffer memory, matching the reference's
// `M/N - 1MiB/N` bound used by both tuners.
func (p SystemProfile) HUpperBound() float64 {
	return (p.M / p.N) - (oneMiBInBits / p.N)
}

// Workload is a probability distribution over the four I/O operation
// classes the cost model scores: empty lookups (Z0), non-empty lookups
// (Z1), range queries (Q), and writes (W). Components must be non-negative
// and sum to 1 within tolerance.
type Workload struct {
	Z0 float64
	Z1 float64
	Q  float64
	W  float64
}

// Validate checks that the workload lies on the 4-simplex within
// simplexTol.
func (w Workload) Validate() error {
	if w.Z0 < 0 || w.Z1 < 0 || w.Q < 0 || w.W < 0 {
		return fmt.Errorf("%w: workload components must be non-negative: %+v", ErrDomain, w)
	}
	sum := w.Z0 + w.Z1 + w.Q + w.W
	if diff := sum - 1; diff > simplexTol || diff < -simplexTol {
		return fmt.Errorf("%w: workload components must sum to 1 (got %g): %+v", ErrDomain, sum, w)
	}
	return nil
}

// Sum returns z0+z1+q+w.
func (w Workload) Sum() float64 { return w.Z0 + w.Z1 + w.Q + w.W }

// Components returns the workload as a slice in [z0,z1,q,w] order, the
// layout every masked/vectorized operation (sampling, KL divergence)
// expects.
func (w Workload) Components() []float64 { return []float64{w.Z0, w.Z1, w.Q, w.W} }

// WorkloadFromComponents builds a Workload from a [z0,z1,q,w]-ordered slice.
func WorkloadFromComponents(c []float64) Workload {
	return Workload{Z0: c[0], Z1: c[1], Q: c[2], W: c[3]}
}

// OpMask selects which of the four operation classes (z0,z1,q,w, in that
// order) participate in sampling or divergence calculations.
type OpMask [4]bool

// AllOps is the mask with every operation class enabled.
var AllOps = OpMask{true, true, true, true}

// Count returns the number of enabled components.
func (m OpMask) Count() int {
	n := 0
	for _, v := range m {
		if v {
			n++
		}
	}
	return n
}

// Policy is the LSM tree's merge policy: leveling keeps at most one run per
// level, tiering allows up to T-1 runs before merging. KHybrid, QFixed, and
// YZHybrid are secondary models sharing the same level/run-count machinery
// but parameterizing per-level run counts differently (see secondary.go).
type Policy int

const (
	Leveling Policy = iota
	Tiering
	KHybrid
	QFixed
	YZHybrid
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	switch p {
	case Leveling:
		return "leveling"
	case Tiering:
		return "tiering"
	case KHybrid:
		return "k-hybrid"
	case QFixed:
		return "q-fixed"
	case YZHybrid:
		return "yz-hybrid"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// IsLeveling reports whether the policy is the Leveling variant — the
// boolean flattening used by the CSV output schema's
// {nominal,robust}_is_leveling_policy columns.
func (p Policy) IsLeveling() bool { return p == Leveling }

// Design is the output of a tuner: a size ratio, a bits-per-element
// allocation, a policy, and the resulting memory split and cost. Robust
// designs additionally carry the dual variables and solver diagnostics.
type Design struct {
	T      float64
	H      float64 // bits-per-element
	Policy Policy
	MFilt  float64 // h * N
	MBuff  float64 // M - MFilt
	Cost   float64

	// Robust-only fields; zero-valued for nominal designs.
	Lambda   float64
	Eta      float64
	ExitMode int
	Obj      float64
}

// NewDesign builds a Design from the optimizer's (h, T) solution point,
// deriving MFilt/MBuff from the profile so the M_filt+M_buff=M invariant
// holds by construction.
func NewDesign(profile SystemProfile, h, t float64, policy Policy, cost float64) Design {
	mFilt := h * profile.N
	return Design{
		T:      t,
		H:      h,
		Policy: policy,
		MFilt:  mFilt,
		MBuff:  profile.M - mFilt,
		Cost:   cost,
	}
}
