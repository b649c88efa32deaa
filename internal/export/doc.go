// Package export renders circuits as OpenQASM 2.0 and as human-readable
// text.
//
// Both renderers are total: a corrupted circuit (unknown gate kind,
// out-of-range qubit, wrong operand count) still serializes. Lines that no
// QASM consumer could parse are emitted as comments rather than dropped, so
// the output always accounts for every op in the circuit. Rendering never
// validates and never mutates its input.
package export
