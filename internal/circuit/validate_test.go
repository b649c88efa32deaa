package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func angle(v float64) *float64 { return &v }

func cleanCircuit() *Circuit {
	return &Circuit{
		NumQubits: 3,
		Gates: []GateOp{
			{Kind: GateH, Qubits: []int{0}, Layer: 0},
			{Kind: GateRX, Qubits: []int{1}, Parameter: angle(1.25), Layer: 0},
			{Kind: GateCX, Qubits: []int{1, 2}, Layer: 1},
			{Kind: GateCCX, Qubits: []int{0, 1, 2}, Layer: 2},
		},
		Measurements: []Measurement{
			{Qubit: 0, Basis: BasisZ},
			{Qubit: 1, Basis: BasisZ},
			{Qubit: 2, Basis: BasisX},
		},
	}
}

func TestValidate_CleanCircuit(t *testing.T) {
	c := cleanCircuit()
	assert.Empty(t, c.Validate())
	assert.True(t, c.Valid())
}

func codes(violations []Violation) []ViolationCode {
	out := make([]ViolationCode, len(violations))
	for i, v := range violations {
		out[i] = v.Code
	}
	return out
}

func TestValidate_SingleViolationPerBugKind(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Circuit)
		want    ViolationCode
		wantIdx int
	}{
		{
			name:    "unknown kind",
			mutate:  func(c *Circuit) { c.Gates[0].Kind = "invalid_gate" },
			want:    CodeUnknownKind,
			wantIdx: 0,
		},
		{
			name:    "arity mismatch extra qubit",
			mutate:  func(c *Circuit) { c.Gates[0].Qubits = append(c.Gates[0].Qubits, 1) },
			want:    CodeArityMismatch,
			wantIdx: 0,
		},
		{
			name:    "arity mismatch missing qubit",
			mutate:  func(c *Circuit) { c.Gates[2].Qubits = c.Gates[2].Qubits[:1] },
			want:    CodeArityMismatch,
			wantIdx: 2,
		},
		{
			name:    "qubit out of range",
			mutate:  func(c *Circuit) { c.Gates[2].Qubits[1] = 7 },
			want:    CodeQubitOutOfRange,
			wantIdx: 2,
		},
		{
			name:    "parameter missing",
			mutate:  func(c *Circuit) { c.Gates[1].Parameter = nil },
			want:    CodeParameterMissing,
			wantIdx: 1,
		},
		{
			name:    "parameter unexpected",
			mutate:  func(c *Circuit) { c.Gates[0].Parameter = angle(0.5) },
			want:    CodeParameterUnexpected,
			wantIdx: 0,
		},
		{
			name:    "invalid measurement basis",
			mutate:  func(c *Circuit) { c.Measurements[1].Basis = "Q" },
			want:    CodeInvalidBasis,
			wantIdx: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cleanCircuit()
			tt.mutate(c)

			violations := c.Validate()
			require.Len(t, violations, 1, "exactly the targeted invariant should break")
			assert.Equal(t, tt.want, violations[0].Code)
			assert.Equal(t, tt.wantIdx, violations[0].Index)
			assert.False(t, c.Valid())
		})
	}
}

func TestValidate_DuplicateQubit(t *testing.T) {
	c := cleanCircuit()
	c.Gates[2].Qubits = []int{1, 1}

	violations := c.Validate()
	assert.Equal(t, []ViolationCode{CodeDuplicateQubit}, codes(violations))
}

func TestValidate_MultipleViolations(t *testing.T) {
	c := cleanCircuit()
	c.Gates[0].Kind = "nope"
	c.Gates[2].Qubits[0] = 99

	violations := c.Validate()
	assert.ElementsMatch(t,
		[]ViolationCode{CodeUnknownKind, CodeQubitOutOfRange},
		codes(violations))
}

func TestClone_IsDeep(t *testing.T) {
	c := cleanCircuit()
	c.Gates[0].Flags = []string{FlagInjected}

	clone := c.Clone()
	clone.Gates[0].Qubits[0] = 2
	clone.Gates[0].Flags[0] = "something_else"
	*clone.Gates[1].Parameter = 9.9
	clone.Measurements[0].Basis = BasisY
	clone.Gates = append(clone.Gates, GateOp{Kind: GateX, Qubits: []int{0}})

	assert.Equal(t, 0, c.Gates[0].Qubits[0], "original qubits untouched")
	assert.Equal(t, FlagInjected, c.Gates[0].Flags[0], "original flags untouched")
	assert.Equal(t, 1.25, *c.Gates[1].Parameter, "original parameter untouched")
	assert.Equal(t, BasisZ, c.Measurements[0].Basis, "original measurement untouched")
	assert.Len(t, c.Gates, 4, "original length untouched")
}

func TestContentHash_Deterministic(t *testing.T) {
	a := cleanCircuit()
	b := cleanCircuit()

	ha, err := ContentHash(a)
	require.NoError(t, err)
	hb, err := ContentHash(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb, "identical circuits must hash identically")

	b.Gates[0].Kind = GateX
	hc, err := ContentHash(b)
	require.NoError(t, err)
	assert.NotEqual(t, ha, hc, "different circuits must hash differently")
}

func TestContentHash_InvalidCircuitStillHashes(t *testing.T) {
	c := cleanCircuit()
	c.Gates[0].Kind = "invalid_gate"
	c.Gates[2].Qubits[1] = 42

	h, err := ContentHash(c)
	require.NoError(t, err)
	assert.NotEmpty(t, h)
}

func TestGateOp_Flags(t *testing.T) {
	op := GateOp{Kind: GateH, Qubits: []int{0}}
	assert.False(t, op.HasFlag(FlagTiming))

	op.AddFlag(FlagTiming)
	op.AddFlag(FlagTiming) // idempotent
	assert.Equal(t, []string{FlagTiming}, op.Flags)
	assert.True(t, op.HasFlag(FlagTiming))
}

func TestCircuit_RotationIndices(t *testing.T) {
	c := cleanCircuit()
	assert.Equal(t, []int{1}, c.RotationIndices())

	noRotations := &Circuit{
		NumQubits: 1,
		Gates:     []GateOp{{Kind: GateH, Qubits: []int{0}}},
	}
	assert.Empty(t, noRotations.RotationIndices())
}
