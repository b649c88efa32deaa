// Package inject corrupts circuits with one local, labeled mutation at a
// time.
//
// The injector never mutates its input: every call clones the circuit first
// and returns the mutated clone plus a Record describing exactly what
// changed (copy-on-write contract). When a requested bug kind has no valid
// target - perturbing a rotation angle on a circuit without rotations, say -
// the call is a reported no-op: the clone comes back unchanged with a nil
// Record. Only an unknown bug kind is an error.
//
// Which candidate gets mutated is chosen uniformly at random from the
// explicitly-seeded source the injector was built with, so a fixed seed
// replays the same mutation on the same circuit.
//
// Three kinds (KindArityCorruption, KindInvalidQubitReference,
// KindInvalidKind) deliberately break a structural invariant; the others
// keep the circuit structurally valid while changing its meaning. Injection
// never validates - circuit.Validate is a separate, opt-in pass.
package inject
