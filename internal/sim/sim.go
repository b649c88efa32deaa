package sim

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/roach88/qglitch/internal/circuit"
)

// ErrNonPositiveShots rejects shot counts below one.
var ErrNonPositiveShots = errors.New("shots must be positive")

// InvalidCircuitError is returned when a circuit fails the validity pass.
// A corrupted op has no well-defined unitary, so simulation refuses it
// instead of guessing.
type InvalidCircuitError struct {
	Violations []circuit.Violation
}

// Error implements the error interface.
func (e *InvalidCircuitError) Error() string {
	return fmt.Sprintf("circuit is not simulable: %d violation(s), first: %s",
		len(e.Violations), e.Violations[0].Message)
}

// IsInvalidCircuit reports whether err is (or wraps) an InvalidCircuitError.
func IsInvalidCircuit(err error) bool {
	var ie *InvalidCircuitError
	return errors.As(err, &ie)
}

// Counts maps measured bitstrings to how often they occurred. Bit q of the
// string (leftmost is qubit 0) holds that qubit's outcome.
type Counts map[string]int

// Run evolves the circuit's statevector and samples shot outcomes.
//
// Every qubit is read out. Measurements declared on the circuit contribute
// their basis changes before sampling; qubits without a declared
// measurement are read in the computational basis.
func Run(c *circuit.Circuit, shots int, rng *rand.Rand) (Counts, error) {
	if shots <= 0 {
		return nil, ErrNonPositiveShots
	}
	if violations := c.Validate(); len(violations) > 0 {
		return nil, &InvalidCircuitError{Violations: violations}
	}

	st := newState(c.NumQubits)
	for _, op := range c.Gates {
		st.apply(op)
	}
	for _, m := range c.Measurements {
		st.rotateToZ(m)
	}

	probs := st.probabilities()
	counts := make(Counts)
	for s := 0; s < shots; s++ {
		counts[bitstring(sample(probs, rng), c.NumQubits)]++
	}
	return counts, nil
}

// sample draws one basis-state index from the distribution. Cumulative
// probability can fall a hair short of 1, so the walk clamps to the last
// state.
func sample(probs []float64, rng *rand.Rand) int {
	r := rng.Float64()
	acc := 0.0
	for i, p := range probs {
		acc += p
		if r < acc {
			return i
		}
	}
	return len(probs) - 1
}

// bitstring renders a basis-state index with qubit 0 leftmost.
func bitstring(index, numQubits int) string {
	out := make([]byte, numQubits)
	for q := 0; q < numQubits; q++ {
		if index&(1<<q) != 0 {
			out[q] = '1'
		} else {
			out[q] = '0'
		}
	}
	return string(out)
}
