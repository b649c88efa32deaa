package export

import (
	"fmt"
	"strings"

	"github.com/roach88/qglitch/internal/circuit"
)

// QASM renders the circuit as OpenQASM 2.0 against qelib1.inc.
//
// Measurements in the X and Y bases are lowered to a basis change (h,
// respectively sdg then h) followed by a computational-basis measure. Ops
// that cannot be expressed in QASM are emitted as comment lines so the
// output stays complete for corrupted circuits.
func QASM(c *circuit.Circuit) string {
	var b strings.Builder
	b.WriteString("OPENQASM 2.0;\n")
	b.WriteString("include \"qelib1.inc\";\n\n")

	fmt.Fprintf(&b, "qreg q[%d];\n", c.NumQubits)
	if len(c.Measurements) > 0 {
		fmt.Fprintf(&b, "creg c[%d];\n", c.NumQubits)
	}

	if len(c.Gates) > 0 {
		b.WriteString("\n")
		for _, op := range c.Gates {
			b.WriteString(gateLine(op))
		}
	}

	if len(c.Measurements) > 0 {
		b.WriteString("\n")
		for _, m := range c.Measurements {
			b.WriteString(measureLines(m))
		}
	}

	return b.String()
}

// gateLine renders one op as a QASM statement, or a comment when the op has
// no QASM spelling.
func gateLine(op circuit.GateOp) string {
	if len(op.Qubits) == 0 {
		return fmt.Sprintf("// gate %s has no operands\n", op.Kind)
	}
	if !circuit.Known(op.Kind) {
		return fmt.Sprintf("// unknown gate %q on %s\n", op.Kind, operands(op.Qubits))
	}

	name := string(op.Kind)
	if op.Parameter != nil {
		name = fmt.Sprintf("%s(%g)", name, *op.Parameter)
	}
	return fmt.Sprintf("%s %s;\n", name, operands(op.Qubits))
}

// operands formats qubit indices as q[i],q[j],...
func operands(qubits []int) string {
	parts := make([]string, len(qubits))
	for i, q := range qubits {
		parts[i] = fmt.Sprintf("q[%d]", q)
	}
	return strings.Join(parts, ",")
}

// measureLines renders one measurement, prefixed by its basis change.
func measureLines(m circuit.Measurement) string {
	var b strings.Builder
	switch m.Basis {
	case circuit.BasisZ:
		// Computational basis, no rotation needed.
	case circuit.BasisX:
		fmt.Fprintf(&b, "h q[%d];\n", m.Qubit)
	case circuit.BasisY:
		fmt.Fprintf(&b, "sdg q[%d];\n", m.Qubit)
		fmt.Fprintf(&b, "h q[%d];\n", m.Qubit)
	default:
		fmt.Fprintf(&b, "// unknown basis %q on q[%d]\n", string(m.Basis), m.Qubit)
	}
	fmt.Fprintf(&b, "measure q[%d] -> c[%d];\n", m.Qubit, m.Qubit)
	return b.String()
}
