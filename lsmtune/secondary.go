package lsmtune

// This file implements three secondary cost models — KHybrid, QFixed, and
// YZHybrid — which share CostModel's L/nFull/fp/runProb machinery but
// parameterize the per-level run count differently instead of branching on
// a binary Policy. They are grounded on
// endure/lsm_tree/cost_func.py's EndureKHybridCost/EndureQFixedCost/
// EndureYZHybridCost classes (original_source/endure).

// Z0KHybrid is the empty-lookup cost when level i carries K[i-1] runs.
func (c *CostModel) Z0KHybrid(h, t float64, k []float64) float64 {
	if c.isSentinelPoint(h, t) {
		return sentinelCost
	}
	lCeil := c.LCeil(h, t)
	z0 := 0.0
	for i := 1; i <= lCeil && i <= len(k); i++ {
		z0 += k[i-1] * c.fp(h, t, i, lCeil)
	}
	return z0
}

// Z1KHybrid is the non-empty-lookup cost under the K-hybrid run-count model.
func (c *CostModel) Z1KHybrid(h, t float64, k []float64) float64 {
	if c.isSentinelPoint(h, t) {
		return sentinelCost
	}
	lCeil := c.LCeil(h, t)
	nFull := c.nFull(h, t, lCeil)

	z1 := 0.0
	for i := 1; i <= lCeil && i <= len(k); i++ {
		rp := c.runProb(h, t, i, nFull)
		levelFP := c.fp(h, t, i, lCeil)
		upperFP := 0.0
		for j := 1; j < i; j++ {
			upperFP += k[j-1] * c.fp(h, t, j, lCeil)
		}
		currFP := ((k[i-1] - 1) / 2) * levelFP
		z1 += rp * (1 + upperFP + currFP)
	}
	return z1
}

// QKHybrid is the range-query cost under the K-hybrid run-count model.
func (c *CostModel) QKHybrid(h, t float64, k []float64) float64 {
	lCeil := c.LCeil(h, t)
	sum := 0.0
	for i := 0; i < lCeil && i < len(k); i++ {
		sum += k[i]
	}
	return c.Profile.S*c.Profile.N/c.Profile.B + sum
}

// WKHybrid is the write cost under the K-hybrid run-count model.
func (c *CostModel) WKHybrid(h, t float64, k []float64) float64 {
	lCeil := c.LCeil(h, t)
	w := 0.0
	for i := 0; i < lCeil && i < len(k); i++ {
		w += (t - 1 + k[i]) / (2 * k[i])
	}
	return w * (1 + c.Profile.Phi) / c.Profile.B
}

// Z0QFixed is the empty-lookup cost when every level carries the same
// uniform run count q.
func (c *CostModel) Z0QFixed(h, t, q float64) float64 {
	lCeil := c.LCeil(h, t)
	z0 := 0.0
	for i := 1; i <= lCeil; i++ {
		z0 += q * c.fp(h, t, i, lCeil)
	}
	return z0
}

// Z1QFixed is the non-empty-lookup cost under the fixed-Q run-count model.
func (c *CostModel) Z1QFixed(h, t, q float64) float64 {
	lCeil := c.LCeil(h, t)
	nFull := c.nFull(h, t, lCeil)
	z1 := 0.0
	for i := 1; i <= lCeil; i++ {
		rp := c.runProb(h, t, i, nFull)
		upperFP := 0.0
		for j := 1; j < i; j++ {
			upperFP += q * c.fp(h, t, j, lCeil)
		}
		currFP := ((q - 1) / 2) * c.fp(h, t, i, lCeil)
		z1 += rp * (1 + upperFP + currFP)
	}
	return z1
}

// QQFixed is the range-query cost under the fixed-Q run-count model.
func (c *CostModel) QQFixed(h, t, q float64) float64 {
	return q*c.L(h, t) + c.Profile.S*c.Profile.N/c.Profile.B
}

// WQFixed is the write cost under the fixed-Q run-count model.
func (c *CostModel) WQFixed(h, t, q float64) float64 {
	return c.L(h, t) * (t - 1 + q) * (1 + c.Profile.Phi) / (2 * q * c.Profile.B)
}

// Z0YZHybrid is the empty-lookup cost under the Y/Z-hybrid model: levels
// 1..L-1 carry Y runs, the last level carries Z runs.
func (c *CostModel) Z0YZHybrid(h, t, y, z float64) float64 {
	lCeil := c.LCeil(h, t)
	z0 := 0.0
	for level := 1; level < lCeil; level++ {
		z0 += y * c.fp(h, t, level, lCeil)
	}
	z0 += z * c.fp(h, t, lCeil, lCeil)
	return z0
}

// Z1YZHybrid is the non-empty-lookup cost under the Y/Z-hybrid model.
func (c *CostModel) Z1YZHybrid(h, t, y, z float64) float64 {
	lCeil := c.LCeil(h, t)
	nFull := c.nFull(h, t, lCeil)

	z1 := 0.0
	for level := 1; level < lCeil; level++ {
		rp := c.runProb(h, t, level, nFull)
		upperFP := 0.0
		for j := 1; j < level; j++ {
			upperFP += y * c.fp(h, t, j, lCeil)
		}
		currFP := ((y - 1) / 2) * c.fp(h, t, level, lCeil)
		z1 += rp * (1 + upperFP + currFP)
	}

	rp := c.runProb(h, t, lCeil, nFull)
	upperFP := 0.0
	for j := 1; j < lCeil; j++ {
		upperFP += y * c.fp(h, t, j, lCeil)
	}
	currFP := ((z - 1) / 2) * c.fp(h, t, lCeil, lCeil)
	z1 += rp * (1 + upperFP + currFP)

	return z1
}

// QYZHybrid is the range-query cost under the Y/Z-hybrid model.
func (c *CostModel) QYZHybrid(h, t, y, z float64) float64 {
	lCeil := float64(c.LCeil(h, t))
	return c.Profile.S*c.Profile.N/c.Profile.B + y*(lCeil-1) + z
}

// WYZHybrid is the write cost under the Y/Z-hybrid model.
func (c *CostModel) WYZHybrid(h, t, y, z float64) float64 {
	levels := float64(c.LCeil(h, t))
	w := (levels - 1) * (t - 1 + y) / (2 * y) // middle levels
	w += (t - 1 + z) / (2 * z)                // last level
	return w * (1 + c.Profile.Phi) / c.Profile.B
}
