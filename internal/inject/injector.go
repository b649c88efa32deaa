package inject

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/roach88/qglitch/internal/circuit"
)

// invalidGateToken is the replacement kind used by KindInvalidKind.
// Deliberately outside the known palette.
const invalidGateToken circuit.GateKind = "invalid_gate"

// Injector applies one labeled mutation per call.
//
// All randomness flows through the explicit source passed at construction;
// there is no ambient random state. An Injector is not safe for concurrent
// use (the shared rand.Rand is not), but concurrent callers operating on
// distinct Injectors and distinct circuits never interfere.
type Injector struct {
	rng *rand.Rand
}

// New creates an Injector drawing from the given source.
func New(rng *rand.Rand) *Injector {
	return &Injector{rng: rng}
}

// NewSeeded creates an Injector with a fresh source from the given seed.
func NewSeeded(seed int64) *Injector {
	return New(rand.New(rand.NewSource(seed)))
}

// Inject applies one mutation of the given kind to a copy of c.
//
// Returns the mutated copy and a Record of what changed. When the kind has
// no valid target in c the call is a reported no-op: the copy is returned
// unchanged with a nil Record. The original circuit is never touched.
//
// An unsupported kind is a configuration error and fails before any copy
// is made.
func (in *Injector) Inject(c *circuit.Circuit, kind Kind) (*circuit.Circuit, *Record, error) {
	if !kind.Valid() {
		return nil, nil, &UnknownKindError{Name: string(kind)}
	}

	out := c.Clone()
	var rec *Record

	switch kind {
	case KindGateSubstitution:
		rec = in.gateSubstitution(out)
	case KindParameterPerturbation:
		rec = in.parameterPerturbation(out)
	case KindQubitRetarget:
		rec = in.qubitRetarget(out)
	case KindControlTargetSwap:
		rec = in.controlTargetSwap(out)
	case KindGateDeletion:
		rec = in.gateDeletion(out)
	case KindGateInsertion:
		rec = in.gateInsertion(out)
	case KindArityCorruption:
		rec = in.arityCorruption(out)
	case KindInvalidQubitReference:
		rec = in.invalidQubitReference(out)
	case KindInvalidKind:
		rec = in.invalidKind(out)
	case KindMeasurementBasisError:
		rec = in.measurementBasisError(out)
	case KindOrderingSwap:
		rec = in.orderingSwap(out)
	}

	return out, rec, nil
}

// InjectRandom picks a bug kind uniformly from kinds (the full taxonomy when
// none are given) and applies it. A single draw is made: if the chosen kind
// has no target the no-op is reported as-is rather than redrawing, so the
// kind distribution stays uniform.
func (in *Injector) InjectRandom(c *circuit.Circuit, kinds ...Kind) (*circuit.Circuit, *Record, error) {
	if len(kinds) == 0 {
		kinds = AllKinds
	}
	for _, k := range kinds {
		if !k.Valid() {
			return nil, nil, &UnknownKindError{Name: string(k)}
		}
	}
	return in.Inject(c, kinds[in.rng.Intn(len(kinds))])
}

// pick returns a uniformly chosen element of candidates.
func (in *Injector) pick(candidates []int) int {
	return candidates[in.rng.Intn(len(candidates))]
}

// gateSubstitution replaces one gate's kind with a different known kind of
// the same arity. Ops whose arity class has no alternative (ccx is the only
// three-qubit kind) are not candidates.
func (in *Injector) gateSubstitution(c *circuit.Circuit) *Record {
	var candidates []int
	for i := range c.Gates {
		spec, known := circuit.Spec(c.Gates[i].Kind)
		if known && len(alternatives(c.Gates[i].Kind, spec.Arity)) > 0 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	idx := in.pick(candidates)
	op := &c.Gates[idx]
	before := snapOp(*op)

	alts := alternatives(op.Kind, circuit.Arity(op.Kind))
	next := alts[in.rng.Intn(len(alts))]

	oldKind := op.Kind
	op.Kind = next
	if circuit.Parametric(next) {
		if op.Parameter == nil {
			theta := in.rng.Float64() * 2 * math.Pi
			op.Parameter = &theta
		}
	} else {
		op.Parameter = nil
	}

	return &Record{
		Kind:        KindGateSubstitution,
		Location:    []int{idx},
		Description: fmt.Sprintf("gate %s replaced with %s", oldKind, next),
		Before:      before,
		After:       snapOp(*op),
	}
}

// alternatives returns the known kinds of the given arity other than kind.
func alternatives(kind circuit.GateKind, arity int) []circuit.GateKind {
	var out []circuit.GateKind
	for _, k := range circuit.KindsWithArity(arity) {
		if k != kind {
			out = append(out, k)
		}
	}
	return out
}

// parameterPerturbation adds signed noise in [-pi/2, pi/2) to one rotation
// angle.
func (in *Injector) parameterPerturbation(c *circuit.Circuit) *Record {
	candidates := c.RotationIndices()
	if len(candidates) == 0 {
		return nil
	}

	idx := in.pick(candidates)
	op := &c.Gates[idx]
	before := snapOp(*op)

	delta := (in.rng.Float64() - 0.5) * math.Pi
	*op.Parameter += delta

	return &Record{
		Kind:        KindParameterPerturbation,
		Location:    []int{idx},
		Description: fmt.Sprintf("angle of %s perturbed by %+.4f", op.Kind, delta),
		Before:      before,
		After:       snapOp(*op),
	}
}

// qubitRetarget points one participant qubit at a different valid index not
// already used by the op. Never creates a duplicate participant.
func (in *Injector) qubitRetarget(c *circuit.Circuit) *Record {
	var candidates []int
	for i := range c.Gates {
		if len(c.Gates[i].Qubits) > 0 && len(freeQubits(c, &c.Gates[i])) > 0 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	idx := in.pick(candidates)
	op := &c.Gates[idx]
	before := snapOp(*op)

	pos := in.rng.Intn(len(op.Qubits))
	free := freeQubits(c, op)
	next := free[in.rng.Intn(len(free))]

	old := op.Qubits[pos]
	op.Qubits[pos] = next

	return &Record{
		Kind:        KindQubitRetarget,
		Location:    []int{idx},
		Description: fmt.Sprintf("%s retargeted: qubit %d to %d at position %d", op.Kind, old, next, pos),
		Before:      before,
		After:       snapOp(*op),
	}
}

// freeQubits returns the in-range indices not already used by the op,
// in ascending order.
func freeQubits(c *circuit.Circuit, op *circuit.GateOp) []int {
	var out []int
	for q := 0; q < c.NumQubits; q++ {
		if !op.UsesQubit(q) {
			out = append(out, q)
		}
	}
	return out
}

// controlTargetSwap reverses the qubit order of one two-qubit op.
func (in *Injector) controlTargetSwap(c *circuit.Circuit) *Record {
	candidates := c.IndicesWithArity(2)
	if len(candidates) == 0 {
		return nil
	}

	idx := in.pick(candidates)
	op := &c.Gates[idx]
	before := snapOp(*op)

	op.Qubits[0], op.Qubits[1] = op.Qubits[1], op.Qubits[0]

	return &Record{
		Kind:        KindControlTargetSwap,
		Location:    []int{idx},
		Description: fmt.Sprintf("%s control and target swapped: %v becomes %v", op.Kind, before.Op.Qubits, op.Qubits),
		Before:      before,
		After:       snapOp(*op),
	}
}

// gateDeletion removes one op, shifting subsequent indices down.
func (in *Injector) gateDeletion(c *circuit.Circuit) *Record {
	if len(c.Gates) == 0 {
		return nil
	}

	idx := in.rng.Intn(len(c.Gates))
	before := snapOp(c.Gates[idx])

	c.Gates = append(c.Gates[:idx], c.Gates[idx+1:]...)

	return &Record{
		Kind:        KindGateDeletion,
		Location:    []int{idx},
		Description: fmt.Sprintf("gate %s on qubits %v removed", before.Op.Kind, before.Op.Qubits),
		Before:      before,
	}
}

// gateInsertion inserts a new syntactically valid op at a random position,
// flagged as injected. Always has a target.
func (in *Injector) gateInsertion(c *circuit.Circuit) *Record {
	var eligible []circuit.GateKind
	for _, k := range circuit.Kinds() {
		if circuit.Arity(k) <= c.NumQubits {
			eligible = append(eligible, k)
		}
	}

	kind := eligible[in.rng.Intn(len(eligible))]
	arity := circuit.Arity(kind)
	root := in.rng.Intn(c.NumQubits)

	qubits := make([]int, arity)
	for i := 0; i < arity; i++ {
		qubits[i] = (root + i) % c.NumQubits
	}

	idx := in.rng.Intn(len(c.Gates) + 1)

	op := circuit.GateOp{
		Kind:   kind,
		Qubits: qubits,
		Layer:  insertionLayer(c, idx),
		Flags:  []string{circuit.FlagInjected},
	}
	if circuit.Parametric(kind) {
		theta := in.rng.Float64() * 2 * math.Pi
		op.Parameter = &theta
	}

	c.Gates = append(c.Gates, circuit.GateOp{})
	copy(c.Gates[idx+1:], c.Gates[idx:])
	c.Gates[idx] = op

	return &Record{
		Kind:        KindGateInsertion,
		Location:    []int{idx},
		Description: fmt.Sprintf("extra %s inserted on qubits %v", kind, qubits),
		After:       snapOp(op),
	}
}

// insertionLayer borrows the layer of the op the insertion displaces so the
// diagnostic stays roughly truthful.
func insertionLayer(c *circuit.Circuit, idx int) int {
	if idx < len(c.Gates) {
		return c.Gates[idx].Layer
	}
	if len(c.Gates) > 0 {
		return c.Gates[len(c.Gates)-1].Layer
	}
	return 0
}

// arityCorruption adds or removes a qubit so the op's qubit count no longer
// matches its kind's arity. The added index is in-range and distinct, so
// the arity invariant is the only one broken.
func (in *Injector) arityCorruption(c *circuit.Circuit) *Record {
	var candidates []int
	for i := range c.Gates {
		if len(c.Gates[i].Qubits) > 0 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	idx := in.pick(candidates)
	op := &c.Gates[idx]
	before := snapOp(*op)

	free := freeQubits(c, op)
	remove := len(free) == 0 || in.rng.Intn(2) == 0

	var desc string
	if remove {
		pos := in.rng.Intn(len(op.Qubits))
		dropped := op.Qubits[pos]
		op.Qubits = append(op.Qubits[:pos], op.Qubits[pos+1:]...)
		desc = fmt.Sprintf("%s lost qubit %d (now %d of %d)", op.Kind, dropped, len(op.Qubits), circuit.Arity(op.Kind))
	} else {
		extra := free[in.rng.Intn(len(free))]
		op.Qubits = append(op.Qubits, extra)
		desc = fmt.Sprintf("%s gained qubit %d (now %d of %d)", op.Kind, extra, len(op.Qubits), circuit.Arity(op.Kind))
	}

	return &Record{
		Kind:        KindArityCorruption,
		Location:    []int{idx},
		Description: desc,
		Before:      before,
		After:       snapOp(*op),
	}
}

// invalidQubitReference points one qubit index past the register, into
// [N, 2N). Only the range invariant breaks.
func (in *Injector) invalidQubitReference(c *circuit.Circuit) *Record {
	var candidates []int
	for i := range c.Gates {
		if len(c.Gates[i].Qubits) > 0 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	idx := in.pick(candidates)
	op := &c.Gates[idx]
	before := snapOp(*op)

	pos := in.rng.Intn(len(op.Qubits))
	old := op.Qubits[pos]
	op.Qubits[pos] = c.NumQubits + in.rng.Intn(c.NumQubits)

	return &Record{
		Kind:        KindInvalidQubitReference,
		Location:    []int{idx},
		Description: fmt.Sprintf("%s qubit %d replaced with out-of-range %d", op.Kind, old, op.Qubits[pos]),
		Before:      before,
		After:       snapOp(*op),
	}
}

// invalidKind replaces one gate's kind with a token outside the known
// palette. Qubits and parameter are left alone so only the known-gate
// invariant breaks.
func (in *Injector) invalidKind(c *circuit.Circuit) *Record {
	if len(c.Gates) == 0 {
		return nil
	}

	idx := in.rng.Intn(len(c.Gates))
	op := &c.Gates[idx]
	before := snapOp(*op)

	old := op.Kind
	op.Kind = invalidGateToken

	return &Record{
		Kind:        KindInvalidKind,
		Location:    []int{idx},
		Description: fmt.Sprintf("gate %s replaced with unknown token %q", old, invalidGateToken),
		Before:      before,
		After:       snapOp(*op),
	}
}

// measurementBasisError flips one measurement to a different basis from
// {X, Y, Z} and flags it as injected.
func (in *Injector) measurementBasisError(c *circuit.Circuit) *Record {
	if len(c.Measurements) == 0 {
		return nil
	}

	idx := in.rng.Intn(len(c.Measurements))
	m := &c.Measurements[idx]
	before := snapMeasurement(*m)

	var others []circuit.Basis
	for _, b := range circuit.AllBases {
		if b != m.Basis {
			others = append(others, b)
		}
	}

	old := m.Basis
	m.Basis = others[in.rng.Intn(len(others))]
	m.AddFlag(circuit.FlagInjected)

	return &Record{
		Kind:        KindMeasurementBasisError,
		Location:    []int{idx},
		Description: fmt.Sprintf("measurement basis on qubit %d changed from %s to %s", m.Qubit, old, m.Basis),
		Before:      before,
		After:       snapMeasurement(*m),
	}
}

// orderingSwap swaps two adjacent ops and flags both with the timing marker.
func (in *Injector) orderingSwap(c *circuit.Circuit) *Record {
	if len(c.Gates) < 2 {
		return nil
	}

	idx := in.rng.Intn(len(c.Gates) - 1)
	before := snapOp(c.Gates[idx])

	c.Gates[idx], c.Gates[idx+1] = c.Gates[idx+1], c.Gates[idx]
	c.Gates[idx].AddFlag(circuit.FlagTiming)
	c.Gates[idx+1].AddFlag(circuit.FlagTiming)

	return &Record{
		Kind:        KindOrderingSwap,
		Location:    []int{idx, idx + 1},
		Description: fmt.Sprintf("gates at %d and %d swapped", idx, idx+1),
		Before:      before,
		After:       snapOp(c.Gates[idx]),
	}
}
