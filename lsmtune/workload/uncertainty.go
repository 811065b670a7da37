package workload

import (
	"hash/fnv"
	"math/rand"

	"github.com/robust-lsm/lsmtune/lsmtune"
)

// Scored pairs a sampled workload with its KL divergence from the
// reference workload used by the driver.
type Scored struct {
	Workload lsmtune.Workload
	Rho      float64 // KL(Workload‖reference)
}

// Session is a named, reproducible subset of scored samples matching one
// evaluation predicate (e.g. "read-heavy", "near-expected").
type Session struct {
	Name    string
	Samples []Scored
}

// SessionPredicate names and tests a workload-evaluation session.
type SessionPredicate struct {
	Name string
	Test func(w lsmtune.Workload, rho float64) bool
}

// DefaultSessionPredicates are the standard evaluation sessions: reads
// (z0+z1>0.8), range-heavy, the two individual lookup classes, writes, and
// "near the reference" by KL distance.
var DefaultSessionPredicates = []SessionPredicate{
	{Name: "read-heavy", Test: func(w lsmtune.Workload, _ float64) bool { return w.Z0+w.Z1 > 0.8 }},
	{Name: "range-heavy", Test: func(w lsmtune.Workload, _ float64) bool { return w.Q > 0.8 }},
	{Name: "empty-read-heavy", Test: func(w lsmtune.Workload, _ float64) bool { return w.Z0 > 0.8 }},
	{Name: "non-empty-read-heavy", Test: func(w lsmtune.Workload, _ float64) bool { return w.Z1 > 0.8 }},
	{Name: "write-heavy", Test: func(w lsmtune.Workload, _ float64) bool { return w.W > 0.8 }},
	{Name: "near-expected", Test: func(_ lsmtune.Workload, rho float64) bool { return rho < 0.2 }},
}

// Driver computes each sample's KL distance to a reference workload and
// partitions samples into named sessions. Grounded on the session-based
// consumption pattern implied by endure/jobs/create_workload_uncertainty_tunings.py.
type Driver struct {
	Reference   lsmtune.Workload
	Mask        lsmtune.OpMask
	Predicates  []SessionPredicate
	SessionSize int // samples drawn per session, without replacement unless the subset is smaller
	Seed        int64
}

// NewDriver returns a Driver using DefaultSessionPredicates, a session size
// of 5 (matching the reference's "5 in practice"), and DefaultSeed.
func NewDriver(reference lsmtune.Workload, mask lsmtune.OpMask) Driver {
	return Driver{
		Reference:   reference,
		Mask:        mask,
		Predicates:  DefaultSessionPredicates,
		SessionSize: 5,
		Seed:        DefaultSeed,
	}
}

// Score computes KL(ŵ‖reference) for every sampled workload, masked by d.Mask.
func (d Driver) Score(samples []lsmtune.Workload) []Scored {
	scored := make([]Scored, len(samples))
	for i, w := range samples {
		scored[i] = Scored{Workload: w, Rho: KL(w, d.Reference, d.Mask)}
	}
	return scored
}

// Sessions partitions scored samples into one Session per predicate. Each
// session draws exactly d.SessionSize samples from the subset matching its
// predicate: without replacement if the subset has enough members, with
// replacement (deterministically, via a per-session derived RNG) otherwise.
// A predicate that matches no sample yields a session with no samples.
func (d Driver) Sessions(scored []Scored) []Session {
	sessions := make([]Session, len(d.Predicates))
	for i, pred := range d.Predicates {
		var subset []Scored
		for _, s := range scored {
			if pred.Test(s.Workload, s.Rho) {
				subset = append(subset, s)
			}
		}
		rng := rngForSubsystem(d.Seed, pred.Name)
		sessions[i] = Session{Name: pred.Name, Samples: drawSamples(subset, d.SessionSize, rng)}
	}
	return sessions
}

// rngForSubsystem derives a deterministic RNG for a named session the same
// way a partitioned-RNG scheme isolates independent subsystems: the master
// seed XORed with an FNV-1a hash of the session name, so every session's
// draw is reproducible and independent of the others' draw order.
func rngForSubsystem(seed int64, name string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return rand.New(rand.NewSource(seed ^ int64(h.Sum64())))
}

// drawSamples draws n samples from pool: without replacement via a Fisher-
// Yates-style shuffle-prefix when len(pool) >= n, otherwise with
// replacement.
func drawSamples(pool []Scored, n int, rng *rand.Rand) []Scored {
	if len(pool) == 0 || n <= 0 {
		return nil
	}
	if len(pool) >= n {
		shuffled := make([]Scored, len(pool))
		copy(shuffled, pool)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		return shuffled[:n]
	}
	out := make([]Scored, n)
	for i := range out {
		out[i] = pool[rng.Intn(len(pool))]
	}
	return out
}
