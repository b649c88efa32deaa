// Package generate produces clean randomized circuits from a configuration.
//
// Generation is fully deterministic given (Config, Seed): gate selection,
// rotation angles, and measurement bases all draw from one seeded source
// threaded through the run. There is no ambient randomness anywhere in the
// package.
//
// Configuration errors (bad qubit count, bad depth, unknown gate, unknown
// policy) fail fast with a typed ConfigError before anything is generated.
// Placement constraints are soft: a gate whose arity exceeds the register
// size is skipped, never an error.
package generate
