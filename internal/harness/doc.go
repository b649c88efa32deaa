// Package harness runs declarative injection scenarios.
//
// A scenario is a YAML file that names a starting circuit (spelled out
// gate by gate, or described as a generator configuration), a sequence of
// bug injections, and a list of assertions over the outcome. The harness
// executes the sequence with deterministic seeds and reports every
// assertion failure rather than stopping at the first.
//
// Scenarios with a fully forced mutation (a single injection candidate)
// can additionally be pinned to golden files; see RunWithGolden.
package harness
