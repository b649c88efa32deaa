package export

import (
	"fmt"
	"strings"

	"github.com/roach88/qglitch/internal/circuit"
	"github.com/roach88/qglitch/internal/inject"
)

const (
	heavyRule = "============================================================"
	lightRule = "----------------------------------------"
)

// Text renders the circuit in a readable fixed-width listing. When injection
// records are supplied they are summarized in the header; flagged ops and
// measurements get inline markers either way.
func Text(c *circuit.Circuit, records ...*inject.Record) string {
	var b strings.Builder

	b.WriteString(heavyRule + "\n")
	b.WriteString("QUANTUM CIRCUIT\n")
	b.WriteString(heavyRule + "\n")
	fmt.Fprintf(&b, "Qubits: %d, Gates: %d\n", c.NumQubits, c.GateCount())

	if len(records) > 0 {
		b.WriteString("CONTAINS BUGS\n")
		fmt.Fprintf(&b, "Injected bugs: %d\n", len(records))
		for i, rec := range records {
			fmt.Fprintf(&b, "  %d. %s: %s\n", i+1, rec.Kind, rec.Description)
		}
	}

	b.WriteString("\nGate Sequence:\n")
	b.WriteString(lightRule + "\n")
	for i, op := range c.Gates {
		b.WriteString(opLine(i, op))
	}

	if len(c.Measurements) > 0 {
		b.WriteString("\nMeasurements:\n")
		b.WriteString(lightRule + "\n")
		for _, m := range c.Measurements {
			b.WriteString(measurementLine(m))
		}
	}

	b.WriteString(heavyRule + "\n")
	return b.String()
}

func opLine(i int, op circuit.GateOp) string {
	line := fmt.Sprintf("%3d. %-6s on q%v", i, op.Kind, op.Qubits)
	if op.Parameter != nil {
		line += fmt.Sprintf(" (theta=%.3f)", *op.Parameter)
	}
	if marks := flagMarks(op.Flags); marks != "" {
		line += "  [" + marks + "]"
	}
	return line + "\n"
}

func measurementLine(m circuit.Measurement) string {
	line := fmt.Sprintf("q%d: %s-basis", m.Qubit, m.Basis)
	if m.HasFlag(circuit.FlagInjected) {
		line += "  [WRONG_BASIS]"
	}
	return line + "\n"
}

// flagMarks maps op flags to the marker vocabulary of the listing. Unknown
// flags pass through uppercased so nothing is silently hidden.
func flagMarks(flags []string) string {
	var marks []string
	for _, f := range flags {
		switch f {
		case circuit.FlagInjected:
			marks = append(marks, "EXTRA")
		case circuit.FlagTiming:
			marks = append(marks, "TIMING")
		default:
			marks = append(marks, strings.ToUpper(f))
		}
	}
	return strings.Join(marks, ", ")
}
