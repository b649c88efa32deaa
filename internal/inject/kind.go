package inject

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the closed enumeration of supported bug kinds.
// String values match the wire/CLI spelling.
type Kind string

const (
	// KindGateSubstitution replaces a gate with a different kind of the
	// same arity. Keeps the circuit valid.
	KindGateSubstitution Kind = "gate_substitution"

	// KindParameterPerturbation adds bounded noise to a rotation angle.
	// Keeps the circuit valid.
	KindParameterPerturbation Kind = "parameter_perturbation"

	// KindQubitRetarget points one participant qubit at a different valid
	// index not already used by the op. Keeps the circuit valid.
	KindQubitRetarget Kind = "qubit_retarget"

	// KindControlTargetSwap reverses the qubit order of a two-qubit gate.
	// Structurally valid; semantics change.
	KindControlTargetSwap Kind = "control_target_swap"

	// KindGateDeletion removes one op, shifting later indices down.
	KindGateDeletion Kind = "gate_deletion"

	// KindGateInsertion inserts a new valid op flagged as injected.
	// Always has a target.
	KindGateInsertion Kind = "gate_insertion"

	// KindArityCorruption adds or removes a qubit so the op's qubit count
	// no longer matches its kind's arity. Deliberately invalid.
	KindArityCorruption Kind = "arity_corruption"

	// KindInvalidQubitReference points a qubit index past the register.
	// Deliberately invalid.
	KindInvalidQubitReference Kind = "invalid_qubit_reference"

	// KindInvalidKind replaces a gate kind with a token outside the known
	// palette. Deliberately invalid.
	KindInvalidKind Kind = "invalid_kind"

	// KindMeasurementBasisError flips one measurement to a different basis.
	KindMeasurementBasisError Kind = "measurement_basis_error"

	// KindOrderingSwap swaps two adjacent ops and flags both with the
	// timing marker.
	KindOrderingSwap Kind = "ordering_swap"
)

// AllKinds lists every supported bug kind in stable order. Random selection
// draws uniformly from this slice unless the caller restricts the set.
var AllKinds = []Kind{
	KindGateSubstitution,
	KindParameterPerturbation,
	KindQubitRetarget,
	KindControlTargetSwap,
	KindGateDeletion,
	KindGateInsertion,
	KindArityCorruption,
	KindInvalidQubitReference,
	KindInvalidKind,
	KindMeasurementBasisError,
	KindOrderingSwap,
}

// Valid reports whether k is a supported bug kind.
func (k Kind) Valid() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

// UnknownKindError is returned when a caller requests a bug kind by a name
// outside the taxonomy. This is a configuration error, not a no-op.
type UnknownKindError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown bug kind %q", e.Name)
}

// IsUnknownKind reports whether err is (or wraps) an UnknownKindError.
func IsUnknownKind(err error) bool {
	var ue *UnknownKindError
	return errors.As(err, &ue)
}

// ParseKind parses a bug kind name, trimming whitespace and lowercasing.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	if !k.Valid() {
		return "", &UnknownKindError{Name: name}
	}
	return k, nil
}

// ParseKinds parses a comma-separated list of bug kind names.
// An empty string yields the full taxonomy.
func ParseKinds(s string) ([]Kind, error) {
	if strings.TrimSpace(s) == "" {
		return append([]Kind(nil), AllKinds...), nil
	}
	var out []Kind
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := ParseKind(part)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	if len(out) == 0 {
		return append([]Kind(nil), AllKinds...), nil
	}
	return out, nil
}
