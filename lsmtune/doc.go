// Package lsmtune computes provably-good configurations for a log-structured
// merge (LSM) tree whose future workload mix is uncertain.
//
// # Reading Guide
//
// Start with these files to understand the core:
//   - types.go: SystemProfile, Workload, Policy, Design — the data model
//   - costmodel.go: the closed-form Monkey/Dostoevsky I/O cost functions
//   - nominal.go: the nominal tuner, optimal for exactly the expected workload
//   - robust.go: the distributionally-robust tuner, optimal over a KL ball
//     of workloads around the expected one
//
// # Architecture
//
// lsmtune defines the cost model and the two tuners; sub-packages handle
// everything around them:
//   - lsmtune/workload/: sampling workloads from the simplex and scoring
//     their divergence from a reference, plus session-based evaluation
//   - lsmtune/sweep/: the Cartesian sweep driver and CSV export
//   - lsmtune/config/: YAML configuration loading and validation
//   - lsmtune/collab/: wire formats for the out-of-scope external
//     kv-store builder/execution binaries
//
// # Key Types
//
//   - CostModel: pure, immutable given a SystemProfile and Workload; its
//     Z0/Z1/Q/W methods take the merge Policy as an explicit parameter
//     rather than mutable state, so a single CostModel serves every policy
//     a tuner wants to try.
//   - NominalTuner / RobustTuner: stateless — both expose a Tune method
//     that takes the CostModel (and, for RobustTuner, an uncertainty
//     radius) and returns a Design.
package lsmtune
