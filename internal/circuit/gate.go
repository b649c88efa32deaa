package circuit

import (
	"fmt"
	"strings"
)

// GateKind identifies a gate in the known palette.
// Kinds use the lowercase OpenQASM spelling ("h", "cx", "ccx", ...).
type GateKind string

// Known gate kinds, partitioned by arity.
const (
	// Single-qubit gates.
	GateH  GateKind = "h"
	GateX  GateKind = "x"
	GateY  GateKind = "y"
	GateZ  GateKind = "z"
	GateS  GateKind = "s"
	GateT  GateKind = "t"
	GateRX GateKind = "rx"
	GateRY GateKind = "ry"
	GateRZ GateKind = "rz"

	// Two-qubit gates. The first qubit is the control, the last the target.
	GateCX   GateKind = "cx"
	GateCZ   GateKind = "cz"
	GateSWAP GateKind = "swap"

	// Three-qubit gates.
	GateCCX GateKind = "ccx"
)

// GateSpec describes a gate kind: how many qubits it touches and whether it
// carries a rotation angle. Adding a gate means adding one table entry, not
// touching control flow.
type GateSpec struct {
	Arity      int
	Parametric bool
}

// gateTable is the single source of truth for the known palette.
// Both the generator and the injector consult it; nothing dispatches on
// gate names directly.
var gateTable = map[GateKind]GateSpec{
	GateH:  {Arity: 1},
	GateX:  {Arity: 1},
	GateY:  {Arity: 1},
	GateZ:  {Arity: 1},
	GateS:  {Arity: 1},
	GateT:  {Arity: 1},
	GateRX: {Arity: 1, Parametric: true},
	GateRY: {Arity: 1, Parametric: true},
	GateRZ: {Arity: 1, Parametric: true},

	GateCX:   {Arity: 2},
	GateCZ:   {Arity: 2},
	GateSWAP: {Arity: 2},

	GateCCX: {Arity: 3},
}

// kindOrder fixes the iteration order over the gate table. Map iteration is
// randomized in Go; every caller that enumerates the palette must go through
// this slice so that seeded runs stay reproducible.
var kindOrder = []GateKind{
	GateH, GateX, GateY, GateZ, GateS, GateT, GateRX, GateRY, GateRZ,
	GateCX, GateCZ, GateSWAP,
	GateCCX,
}

// DefaultPalette is the palette used when the caller does not configure one.
var DefaultPalette = []GateKind{GateH, GateX, GateY, GateZ, GateCX, GateCCX}

// Spec returns the descriptor for a gate kind.
// The second return is false for kinds outside the known palette.
func Spec(kind GateKind) (GateSpec, bool) {
	spec, ok := gateTable[kind]
	return spec, ok
}

// Known reports whether kind is in the known palette.
func Known(kind GateKind) bool {
	_, ok := gateTable[kind]
	return ok
}

// Arity returns the qubit count for a known kind, or 0 for an unknown one.
func Arity(kind GateKind) int {
	return gateTable[kind].Arity
}

// Parametric reports whether a known kind carries a rotation angle.
func Parametric(kind GateKind) bool {
	return gateTable[kind].Parametric
}

// Kinds returns every known gate kind in stable table order.
func Kinds() []GateKind {
	out := make([]GateKind, len(kindOrder))
	copy(out, kindOrder)
	return out
}

// KindsWithArity returns the known kinds of the given arity in stable order.
func KindsWithArity(arity int) []GateKind {
	var out []GateKind
	for _, k := range kindOrder {
		if gateTable[k].Arity == arity {
			out = append(out, k)
		}
	}
	return out
}

// ParsePalette parses a comma-separated gate list ("h,x,cx") into a palette.
// Names are lowercased and trimmed. Returns an error naming every unknown
// gate so the caller can fail fast before any generation happens.
func ParsePalette(s string) ([]GateKind, error) {
	if strings.TrimSpace(s) == "" {
		return append([]GateKind(nil), DefaultPalette...), nil
	}

	var palette []GateKind
	var unknown []string
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		kind := GateKind(name)
		if !Known(kind) {
			unknown = append(unknown, name)
			continue
		}
		palette = append(palette, kind)
	}

	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown gates: %s", strings.Join(unknown, ", "))
	}
	if len(palette) == 0 {
		return nil, fmt.Errorf("empty gate palette")
	}
	return palette, nil
}
