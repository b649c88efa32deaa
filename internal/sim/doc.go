// Package sim runs circuits on a dense statevector simulator.
//
// The simulator is strict where the rest of the system is permissive: it
// refuses invalid circuits up front (via the validity pass) because a gate
// with a missing operand or an out-of-range qubit has no well-defined
// unitary. Amplitudes are tracked as complex128, so the practical register
// limit is around 20 qubits.
//
// Measurement sampling draws from the explicitly-seeded source passed by
// the caller; a fixed seed replays the same shot outcomes.
package sim
