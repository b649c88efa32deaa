package circuit

// Clone returns a deep copy of the op. The qubit slice, flags, and parameter
// are copied so mutations on the clone never alias the original.
func (op GateOp) Clone() GateOp {
	out := op
	out.Qubits = make([]int, len(op.Qubits))
	copy(out.Qubits, op.Qubits)
	if op.Parameter != nil {
		p := *op.Parameter
		out.Parameter = &p
	}
	if op.Flags != nil {
		out.Flags = make([]string, len(op.Flags))
		copy(out.Flags, op.Flags)
	}
	return out
}

// Clone returns a deep copy of the measurement.
func (m Measurement) Clone() Measurement {
	out := m
	if m.Flags != nil {
		out.Flags = make([]string, len(m.Flags))
		copy(out.Flags, m.Flags)
	}
	return out
}

// Clone returns a deep copy of the circuit. This is the copy-on-write
// contract every mutating component relies on: the injector clones before
// touching anything, so the caller's clean reference stays clean.
func (c *Circuit) Clone() *Circuit {
	out := &Circuit{NumQubits: c.NumQubits}
	if c.Gates != nil {
		out.Gates = make([]GateOp, len(c.Gates))
		for i := range c.Gates {
			out.Gates[i] = c.Gates[i].Clone()
		}
	}
	if c.Measurements != nil {
		out.Measurements = make([]Measurement, len(c.Measurements))
		for i := range c.Measurements {
			out.Measurements[i] = c.Measurements[i].Clone()
		}
	}
	return out
}
