package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qglitch/internal/circuit"
)

func angle(v float64) *float64 { return &v }

func run(t *testing.T, c *circuit.Circuit, shots int) Counts {
	t.Helper()
	counts, err := Run(c, shots, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	total := 0
	for _, n := range counts {
		total += n
	}
	require.Equal(t, shots, total, "every shot must land somewhere")
	return counts
}

func TestRun_GroundStateStaysZero(t *testing.T) {
	c := &circuit.Circuit{NumQubits: 2}
	counts := run(t, c, 32)
	assert.Equal(t, Counts{"00": 32}, counts)
}

func TestRun_BitFlip(t *testing.T) {
	c := &circuit.Circuit{
		NumQubits: 1,
		Gates:     []circuit.GateOp{{Kind: circuit.GateX, Qubits: []int{0}}},
	}
	counts := run(t, c, 16)
	assert.Equal(t, Counts{"1": 16}, counts)
}

func TestRun_BellPairIsCorrelated(t *testing.T) {
	c := &circuit.Circuit{
		NumQubits: 2,
		Gates: []circuit.GateOp{
			{Kind: circuit.GateH, Qubits: []int{0}},
			{Kind: circuit.GateCX, Qubits: []int{0, 1}},
		},
	}

	counts := run(t, c, 256)
	for bits := range counts {
		assert.Contains(t, []string{"00", "11"}, bits,
			"entangled qubits never disagree")
	}
	assert.Positive(t, counts["00"])
	assert.Positive(t, counts["11"])
}

func TestRun_XBasisMeasurementUndoesH(t *testing.T) {
	// H|0> is the +1 eigenstate of X, so an X-basis readout is certain.
	c := &circuit.Circuit{
		NumQubits: 1,
		Gates:     []circuit.GateOp{{Kind: circuit.GateH, Qubits: []int{0}}},
		Measurements: []circuit.Measurement{
			{Qubit: 0, Basis: circuit.BasisX},
		},
	}
	counts := run(t, c, 32)
	assert.Equal(t, Counts{"0": 32}, counts)
}

func TestRun_RXPiActsAsX(t *testing.T) {
	c := &circuit.Circuit{
		NumQubits: 1,
		Gates: []circuit.GateOp{
			{Kind: circuit.GateRX, Qubits: []int{0}, Parameter: angle(math.Pi)},
		},
	}
	counts := run(t, c, 16)
	assert.Equal(t, Counts{"1": 16}, counts)
}

func TestRun_ToffoliFiresOnBothControls(t *testing.T) {
	c := &circuit.Circuit{
		NumQubits: 3,
		Gates: []circuit.GateOp{
			{Kind: circuit.GateX, Qubits: []int{0}},
			{Kind: circuit.GateX, Qubits: []int{1}},
			{Kind: circuit.GateCCX, Qubits: []int{0, 1, 2}},
		},
	}
	counts := run(t, c, 8)
	assert.Equal(t, Counts{"111": 8}, counts)
}

func TestRun_SwapMovesExcitation(t *testing.T) {
	c := &circuit.Circuit{
		NumQubits: 3,
		Gates: []circuit.GateOp{
			{Kind: circuit.GateX, Qubits: []int{0}},
			{Kind: circuit.GateSWAP, Qubits: []int{0, 1}},
		},
	}
	counts := run(t, c, 8)
	assert.Equal(t, Counts{"010": 8}, counts)
}

func TestRun_RefusesInvalidCircuit(t *testing.T) {
	c := &circuit.Circuit{
		NumQubits: 2,
		Gates:     []circuit.GateOp{{Kind: circuit.GateCX, Qubits: []int{0, 5}}},
	}

	counts, err := Run(c, 8, rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.Nil(t, counts)
	assert.True(t, IsInvalidCircuit(err))

	var ie *InvalidCircuitError
	require.ErrorAs(t, err, &ie)
	require.Len(t, ie.Violations, 1)
	assert.Equal(t, circuit.CodeQubitOutOfRange, ie.Violations[0].Code)
}

func TestRun_RefusesNonPositiveShots(t *testing.T) {
	c := &circuit.Circuit{NumQubits: 1}
	_, err := Run(c, 0, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrNonPositiveShots)
}

func TestRun_SameSeedSameCounts(t *testing.T) {
	c := &circuit.Circuit{
		NumQubits: 2,
		Gates: []circuit.GateOp{
			{Kind: circuit.GateH, Qubits: []int{0}},
			{Kind: circuit.GateH, Qubits: []int{1}},
		},
	}

	a, err := Run(c, 64, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	b, err := Run(c, 64, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
