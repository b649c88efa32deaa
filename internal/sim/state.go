package sim

import (
	"math"
	"math/cmplx"

	"github.com/roach88/qglitch/internal/circuit"
)

// state is a dense statevector over 2^n amplitudes. Qubit q maps to bit
// 1<<q of the amplitude index.
type state struct {
	amps      []complex128
	numQubits int
}

// newState prepares |0...0>.
func newState(numQubits int) *state {
	s := &state{
		amps:      make([]complex128, 1<<numQubits),
		numQubits: numQubits,
	}
	s.amps[0] = 1
	return s
}

// apply dispatches one validated op onto the state.
func (s *state) apply(op circuit.GateOp) {
	q := op.Qubits
	switch op.Kind {
	case circuit.GateH:
		s.applyH(q[0])
	case circuit.GateX:
		s.applyX(q[0])
	case circuit.GateY:
		s.applyY(q[0])
	case circuit.GateZ:
		s.applyZ(q[0])
	case circuit.GateS:
		s.applyPhase(q[0], 1i)
	case circuit.GateT:
		s.applyPhase(q[0], cmplx.Exp(complex(0, math.Pi/4)))
	case circuit.GateRX:
		s.applyRX(q[0], *op.Parameter)
	case circuit.GateRY:
		s.applyRY(q[0], *op.Parameter)
	case circuit.GateRZ:
		s.applyRZ(q[0], *op.Parameter)
	case circuit.GateCX:
		s.applyCX(q[0], q[1])
	case circuit.GateCZ:
		s.applyCZ(q[0], q[1])
	case circuit.GateSWAP:
		s.applySWAP(q[0], q[1])
	case circuit.GateCCX:
		s.applyCCX(q[0], q[1], q[2])
	}
}

// rotateToZ prepends the basis change that maps the measurement basis onto
// the computational one: H for X, S-dagger then H for Y.
func (s *state) rotateToZ(m circuit.Measurement) {
	switch m.Basis {
	case circuit.BasisX:
		s.applyH(m.Qubit)
	case circuit.BasisY:
		s.applyPhase(m.Qubit, -1i)
		s.applyH(m.Qubit)
	}
}

func (s *state) applyH(q int) {
	h := complex(1.0/math.Sqrt2, 0)
	bit := 1 << q
	next := make([]complex128, len(s.amps))
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			next[i] = h * (s.amps[i] + s.amps[j])
			next[j] = h * (s.amps[i] - s.amps[j])
		}
	}
	s.amps = next
}

func (s *state) applyX(q int) {
	bit := 1 << q
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
}

func (s *state) applyY(q int) {
	bit := 1 << q
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			s.amps[i], s.amps[j] = 1i*s.amps[j], -1i*s.amps[i]
		}
	}
}

func (s *state) applyZ(q int) {
	s.applyPhase(q, -1)
}

// applyPhase multiplies the |1> amplitudes of qubit q by factor.
func (s *state) applyPhase(q int, factor complex128) {
	bit := 1 << q
	for i := range s.amps {
		if i&bit != 0 {
			s.amps[i] *= factor
		}
	}
}

func (s *state) applyRX(q int, theta float64) {
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	next := make([]complex128, len(s.amps))
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			next[i] = c*s.amps[i] + js*s.amps[j]
			next[j] = js*s.amps[i] + c*s.amps[j]
		}
	}
	s.amps = next
}

func (s *state) applyRY(q int, theta float64) {
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	next := make([]complex128, len(s.amps))
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			next[i] = c*s.amps[i] - sn*s.amps[j]
			next[j] = sn*s.amps[i] + c*s.amps[j]
		}
	}
	s.amps = next
}

func (s *state) applyRZ(q int, theta float64) {
	bit := 1 << q
	phase := cmplx.Exp(complex(0, theta/2))
	for i := range s.amps {
		if i&bit != 0 {
			s.amps[i] *= phase
		} else {
			s.amps[i] *= cmplx.Conj(phase)
		}
	}
}

func (s *state) applyCX(control, target int) {
	cBit := 1 << control
	tBit := 1 << target
	for i := range s.amps {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
}

func (s *state) applyCZ(control, target int) {
	cBit := 1 << control
	tBit := 1 << target
	for i := range s.amps {
		if i&cBit != 0 && i&tBit != 0 {
			s.amps[i] *= -1
		}
	}
}

func (s *state) applySWAP(a, b int) {
	aBit := 1 << a
	bBit := 1 << b
	for i := range s.amps {
		if i&aBit != 0 && i&bBit == 0 {
			j := (i &^ aBit) | bBit
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
}

func (s *state) applyCCX(c1, c2, target int) {
	b1 := 1 << c1
	b2 := 1 << c2
	tBit := 1 << target
	for i := range s.amps {
		if i&b1 != 0 && i&b2 != 0 && i&tBit == 0 {
			j := i | tBit
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
}

// probabilities returns |amp|^2 per basis state.
func (s *state) probabilities() []float64 {
	probs := make([]float64, len(s.amps))
	for i, a := range s.amps {
		probs[i] = real(a * cmplx.Conj(a))
	}
	return probs
}
