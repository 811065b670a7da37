package lsmtune

import (
	"fmt"
	"math"
)

// sentinelCost stands in for an infeasible or NaN-producing trial point.
// Optimizers never need to special-case it; it is simply the largest finite
// float64, so it always compares as worse than any real cost.
const sentinelCost = math.MaxFloat64

// CostModel evaluates the Monkey/Dostoevsky analytic I/O cost terms for a
// fixed SystemProfile and Workload. It is immutable after construction —
// Z0/Z1/Q/W/Cost all take the Policy as an explicit parameter rather than
// mutating a field, so one CostModel serves every policy a tuner compares.
type CostModel struct {
	Profile  SystemProfile
	Workload Workload
}

// NewCostModel validates profile and workload and returns a ready CostModel.
func NewCostModel(profile SystemProfile, workload Workload) (*CostModel, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := workload.Validate(); err != nil {
		return nil, err
	}
	return &CostModel{Profile: profile, Workload: workload}, nil
}

// WithWorkload returns a copy of the CostModel scoped to a different
// workload, leaving the profile untouched, so one design can be scored
// against several workloads under the same system profile.
func (c *CostModel) WithWorkload(w Workload) *CostModel {
	cp := *c
	cp.Workload = w
	return &cp
}

// MBuff returns the write-buffer memory in bytes for a given bits-per-element
// allocation h: (M - h*N) / 8.
func (c *CostModel) MBuff(h float64) float64 {
	return (c.Profile.M - h*c.Profile.N) / bitsInByte
}

// L returns the real-valued level count for (h, T).
func (c *CostModel) L(h, t float64) float64 {
	mbuff := c.MBuff(h)
	return math.Log((c.Profile.N*c.Profile.E)/mbuff+1) / math.Log(t)
}

// LCeil returns ceil(L(h,t)) as an int, the number of levels the tree
// actually allocates.
func (c *CostModel) LCeil(h, t float64) int {
	return int(math.Ceil(c.L(h, t)))
}

// fp is the Bloom-filter false-positive rate of level i (1-indexed) given
// the ceiling of the level count, lCeil.
func (c *CostModel) fp(h, t float64, i, lCeil int) float64 {
	alpha := math.Exp(-h * math.Ln2 * math.Ln2)
	top := math.Pow(t, t/(t-1))
	bot := math.Pow(t, float64(lCeil+1-i))
	return alpha * top / bot
}

// nFull returns the full-tree entry count across levels 1..lCeil.
func (c *CostModel) nFull(h, t float64, lCeil int) float64 {
	mbuff := c.MBuff(h)
	total := 0.0
	for level := 1; level <= lCeil; level++ {
		total += (t - 1) * math.Pow(t, float64(level-1)) * mbuff / c.Profile.E
	}
	return total
}

// runProb returns the probability mass at level i (1-indexed) given the
// full-tree entry count nFull.
func (c *CostModel) runProb(h, t float64, i int, nFull float64) float64 {
	mbuff := c.MBuff(h)
	return (t - 1) * mbuff * math.Pow(t, float64(i-1)) / (nFull * c.Profile.E)
}

// isSentinelPoint reports whether (h, t) is a numerically infeasible trial
// point: NaN inputs, or a non-positive write buffer (DomainError territory
// for a direct caller, but recovered silently here per the error-handling
// policy).
func (c *CostModel) isSentinelPoint(h, t float64) bool {
	if math.IsNaN(h) || math.IsNaN(t) {
		return true
	}
	if t <= 1 {
		return true
	}
	return c.MBuff(h) <= 0
}

// Z0 is the expected number of I/Os for an empty-lookup query.
func (c *CostModel) Z0(h, t float64, policy Policy) float64 {
	if c.isSentinelPoint(h, t) {
		return sentinelCost
	}
	lCeil := c.LCeil(h, t)
	z0 := 0.0
	for i := 1; i <= lCeil; i++ {
		z0 += c.fp(h, t, i, lCeil)
	}
	if policy == Tiering {
		z0 *= t - 1
	}
	return z0
}

// Z1 is the expected number of I/Os for a non-empty-lookup query.
//
// The inner upper_fp sum runs j=1..i-1 (every level above i); level i's
// own contribution is carried by curr_fp below. This matches the reference
// implementation's behavior exactly; see DESIGN.md for the pinned
// off-by-one discussion.
func (c *CostModel) Z1(h, t float64, policy Policy) float64 {
	if c.isSentinelPoint(h, t) {
		return sentinelCost
	}
	lCeil := c.LCeil(h, t)
	nFull := c.nFull(h, t, lCeil)

	z1 := 0.0
	for i := 1; i <= lCeil; i++ {
		upperFP := 0.0
		for j := 1; j < i; j++ {
			upperFP += c.fp(h, t, j, lCeil)
		}
		rp := c.runProb(h, t, i, nFull)

		var currFP float64
		if policy == Tiering {
			upperFP *= t - 1
			currFP = ((t - 2) / 2) * c.fp(h, t, i, lCeil)
		}
		z1 += rp * (1 + upperFP + currFP)
	}
	return z1
}

// Q is the expected number of I/Os for a range query.
func (c *CostModel) Q(h, t float64, policy Policy) float64 {
	if c.isSentinelPoint(h, t) {
		return sentinelCost
	}
	q := c.Profile.S * c.Profile.N / c.Profile.B
	l := c.L(h, t)
	if policy == Tiering {
		q += (t - 1) * l
	} else {
		q += l
	}
	return q
}

// W is the expected number of I/Os for a write.
func (c *CostModel) W(h, t float64, policy Policy) float64 {
	if c.isSentinelPoint(h, t) {
		return sentinelCost
	}
	w := (1 + c.Profile.Phi) * c.L(h, t) / c.Profile.B
	if policy == Leveling {
		w *= t / 2
	}
	return w
}

// Cost is the weighted sum z0*Z0 + z1*Z1 + q*Q + w*W. It returns
// sentinelCost — never NaN or panics — at any infeasible or NaN (h,T),
// which is what lets the nominal and robust optimizers treat infeasibility
// as "just a very bad point" rather than a distinguished error case.
func (c *CostModel) Cost(h, t float64, policy Policy) float64 {
	if c.isSentinelPoint(h, t) {
		return sentinelCost
	}
	wl := c.Workload
	return wl.Z0*c.Z0(h, t, policy) +
		wl.Z1*c.Z1(h, t, policy) +
		wl.Q*c.Q(h, t, policy) +
		wl.W*c.W(h, t, policy)
}

// OpCosts returns the four per-operation cost terms [Z0,Z1,Q,W] at (h,t)
// for policy, in the same component order as Workload.Components. Used by
// the robust tuner's dual objective, which needs each term individually
// rather than their weighted sum.
func (c *CostModel) OpCosts(h, t float64, policy Policy) [4]float64 {
	if c.isSentinelPoint(h, t) {
		return [4]float64{sentinelCost, sentinelCost, sentinelCost, sentinelCost}
	}
	return [4]float64{
		c.Z0(h, t, policy),
		c.Z1(h, t, policy),
		c.Q(h, t, policy),
		c.W(h, t, policy),
	}
}

// String renders the model's profile and workload for logging.
func (c *CostModel) String() string {
	return fmt.Sprintf("CostModel{profile=%+v, workload=%+v}", c.Profile, c.Workload)
}
