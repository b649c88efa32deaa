package circuit

import "slices"

// Basis names a measurement basis.
type Basis string

// Measurement bases.
const (
	BasisX Basis = "X"
	BasisY Basis = "Y"
	BasisZ Basis = "Z"
)

// AllBases lists the valid measurement bases in stable order.
var AllBases = []Basis{BasisX, BasisY, BasisZ}

// ValidBasis reports whether b is one of X, Y, Z.
func ValidBasis(b Basis) bool {
	return b == BasisX || b == BasisY || b == BasisZ
}

// Flags set on a GateOp after the fact. The generator never sets flags;
// only the injector does.
const (
	// FlagInjected marks an op that was inserted as a bug.
	FlagInjected = "is_bug"
	// FlagTiming marks an op whose position was swapped with a neighbour.
	FlagTiming = "timing_bug"
)

// GateOp is one scheduled operation in a circuit.
//
// Invariant (clean state): len(Qubits) == Arity(Kind), every index is in
// [0, NumQubits), indices within one op are pairwise distinct, and Parameter
// is non-nil iff Kind is parametric. A buggy circuit may deliberately violate
// any of these; see Validate.
type GateOp struct {
	Kind GateKind `json:"kind"`

	// Qubits is ordered: for multi-qubit gates the first index is the
	// control (or controls), the last is the target.
	Qubits []int `json:"qubits"`

	// Parameter is the rotation angle in radians, present only for
	// parametric kinds. Generated uniformly in [0, 2pi).
	Parameter *float64 `json:"parameter,omitempty"`

	// Layer is the generation round in which the op was appended.
	// Diagnostic only; not required for correctness.
	Layer int `json:"layer"`

	// Flags holds post-hoc annotations in insertion order.
	Flags []string `json:"flags,omitempty"`
}

// HasFlag reports whether the op carries the given flag.
func (op *GateOp) HasFlag(flag string) bool {
	return slices.Contains(op.Flags, flag)
}

// AddFlag appends a flag if not already present.
func (op *GateOp) AddFlag(flag string) {
	if !op.HasFlag(flag) {
		op.Flags = append(op.Flags, flag)
	}
}

// UsesQubit reports whether the op touches the given qubit index.
func (op *GateOp) UsesQubit(q int) bool {
	return slices.Contains(op.Qubits, q)
}

// Measurement records one terminal measurement.
type Measurement struct {
	Qubit int   `json:"qubit"`
	Basis Basis `json:"basis"`

	// Flags holds post-hoc annotations, same convention as GateOp.Flags.
	Flags []string `json:"flags,omitempty"`
}

// HasFlag reports whether the measurement carries the given flag.
func (m *Measurement) HasFlag(flag string) bool {
	return slices.Contains(m.Flags, flag)
}

// AddFlag appends a flag if not already present.
func (m *Measurement) AddFlag(flag string) {
	if !m.HasFlag(flag) {
		m.Flags = append(m.Flags, flag)
	}
}

// Circuit is an ordered gate sequence over a fixed qubit register.
//
// A Circuit is created by the generator and is otherwise immutable except
// through the injector, which operates on a Clone and returns a new Circuit.
// Once Measurements is non-empty the circuit is terminal: no further GateOp
// may be appended.
type Circuit struct {
	NumQubits    int           `json:"num_qubits"`
	Gates        []GateOp      `json:"gates"`
	Measurements []Measurement `json:"measurements,omitempty"`
}

// Measured reports whether the circuit has terminal measurements.
func (c *Circuit) Measured() bool {
	return len(c.Measurements) > 0
}

// GateCount returns the number of scheduled operations.
func (c *Circuit) GateCount() int {
	return len(c.Gates)
}

// RotationIndices returns the indices of ops that carry a parameter,
// in sequence order.
func (c *Circuit) RotationIndices() []int {
	var out []int
	for i := range c.Gates {
		if c.Gates[i].Parameter != nil {
			out = append(out, i)
		}
	}
	return out
}

// IndicesWithArity returns the indices of ops whose qubit count equals k,
// in sequence order. Note this inspects len(Qubits), not the descriptor
// table, so it stays meaningful on corrupted circuits.
func (c *Circuit) IndicesWithArity(k int) []int {
	var out []int
	for i := range c.Gates {
		if len(c.Gates[i].Qubits) == k {
			out = append(out, i)
		}
	}
	return out
}
