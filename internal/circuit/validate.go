package circuit

import "fmt"

// ViolationCode categorizes validity violations.
type ViolationCode string

const (
	// CodeUnknownKind indicates a gate kind outside the known palette.
	CodeUnknownKind ViolationCode = "UNKNOWN_KIND"

	// CodeArityMismatch indicates len(Qubits) != Arity(Kind).
	CodeArityMismatch ViolationCode = "ARITY_MISMATCH"

	// CodeQubitOutOfRange indicates a qubit index outside [0, NumQubits).
	CodeQubitOutOfRange ViolationCode = "QUBIT_OUT_OF_RANGE"

	// CodeDuplicateQubit indicates two equal indices within one op.
	CodeDuplicateQubit ViolationCode = "DUPLICATE_QUBIT"

	// CodeParameterMissing indicates a parametric kind without an angle.
	CodeParameterMissing ViolationCode = "PARAMETER_MISSING"

	// CodeParameterUnexpected indicates an angle on a non-parametric kind.
	CodeParameterUnexpected ViolationCode = "PARAMETER_UNEXPECTED"

	// CodeInvalidBasis indicates a measurement basis outside {X, Y, Z}.
	CodeInvalidBasis ViolationCode = "INVALID_BASIS"
)

// Violation describes one broken invariant at one location.
type Violation struct {
	Code ViolationCode `json:"code"`

	// Index locates the offending GateOp, or the offending measurement for
	// CodeInvalidBasis.
	Index int `json:"index"`

	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s at %d: %s", v.Code, v.Index, v.Message)
}

// Validate runs the full invariant check and returns every violation found.
//
// This pass is opt-in by design: circuits corrupted by the injector must
// remain representable, serializable, and loggable. Callers that require a
// clean circuit (the simulator, for one) invoke Validate explicitly and
// reject on a non-empty result.
func (c *Circuit) Validate() []Violation {
	var out []Violation

	for i := range c.Gates {
		op := &c.Gates[i]

		spec, known := Spec(op.Kind)
		if !known {
			out = append(out, Violation{
				Code:    CodeUnknownKind,
				Index:   i,
				Message: fmt.Sprintf("gate kind %q is not in the known palette", op.Kind),
			})
			// Arity and parameter rules are meaningless for an unknown
			// kind; range and distinctness still apply.
			out = append(out, c.checkQubits(i, op)...)
			continue
		}

		if len(op.Qubits) != spec.Arity {
			out = append(out, Violation{
				Code:    CodeArityMismatch,
				Index:   i,
				Message: fmt.Sprintf("%s expects %d qubits, got %d", op.Kind, spec.Arity, len(op.Qubits)),
			})
		}

		out = append(out, c.checkQubits(i, op)...)

		if spec.Parametric && op.Parameter == nil {
			out = append(out, Violation{
				Code:    CodeParameterMissing,
				Index:   i,
				Message: fmt.Sprintf("%s requires a rotation angle", op.Kind),
			})
		}
		if !spec.Parametric && op.Parameter != nil {
			out = append(out, Violation{
				Code:    CodeParameterUnexpected,
				Index:   i,
				Message: fmt.Sprintf("%s does not take a rotation angle", op.Kind),
			})
		}
	}

	for i := range c.Measurements {
		m := &c.Measurements[i]
		if !ValidBasis(m.Basis) {
			out = append(out, Violation{
				Code:    CodeInvalidBasis,
				Index:   i,
				Message: fmt.Sprintf("measurement basis %q is not one of X, Y, Z", m.Basis),
			})
		}
		if m.Qubit < 0 || m.Qubit >= c.NumQubits {
			out = append(out, Violation{
				Code:    CodeQubitOutOfRange,
				Index:   i,
				Message: fmt.Sprintf("measurement qubit %d outside [0, %d)", m.Qubit, c.NumQubits),
			})
		}
	}

	return out
}

// checkQubits validates range and distinctness for one op.
func (c *Circuit) checkQubits(index int, op *GateOp) []Violation {
	var out []Violation

	seen := make(map[int]bool, len(op.Qubits))
	for _, q := range op.Qubits {
		if q < 0 || q >= c.NumQubits {
			out = append(out, Violation{
				Code:    CodeQubitOutOfRange,
				Index:   index,
				Message: fmt.Sprintf("qubit %d outside [0, %d)", q, c.NumQubits),
			})
		}
		if seen[q] {
			out = append(out, Violation{
				Code:    CodeDuplicateQubit,
				Index:   index,
				Message: fmt.Sprintf("qubit %d appears twice", q),
			})
		}
		seen[q] = true
	}

	return out
}

// Valid reports whether the circuit passes the full invariant check.
func (c *Circuit) Valid() bool {
	return len(c.Validate()) == 0
}
