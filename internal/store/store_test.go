package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qglitch/internal/circuit"
	"github.com/roach88/qglitch/internal/inject"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "dataset.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleCircuit() *circuit.Circuit {
	return &circuit.Circuit{
		NumQubits: 2,
		Gates: []circuit.GateOp{
			{Kind: circuit.GateH, Qubits: []int{0}},
			{Kind: circuit.GateCX, Qubits: []int{0, 1}, Layer: 1},
		},
		Measurements: []circuit.Measurement{
			{Qubit: 0, Basis: circuit.BasisZ},
			{Qubit: 1, Basis: circuit.BasisZ},
		},
	}
}

func sampleRow(id string, seq int64, label string, records ...*inject.Record) CircuitRow {
	c := sampleCircuit()
	return CircuitRow{
		ID:          id,
		ContentHash: circuit.MustContentHash(c),
		Label:       label,
		Seq:         seq,
		Circuit:     c,
		Records:     records,
	}
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	counts, err := s2.CountByLabel(context.Background())
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestWriteCircuit_RoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	op := sampleCircuit().Gates[1]
	rec := &inject.Record{
		Kind:        inject.KindControlTargetSwap,
		Location:    []int{1},
		Description: "cx control and target swapped: [0 1] becomes [1 0]",
		Before:      &inject.Snapshot{Op: &op},
	}

	row := sampleRow("row-1", 1, LabelBuggy, rec)
	require.NoError(t, s.WriteCircuit(ctx, row))

	got, err := s.ReadCircuit(ctx, "row-1")
	require.NoError(t, err)
	assert.Equal(t, row.ID, got.ID)
	assert.Equal(t, row.ContentHash, got.ContentHash)
	assert.Equal(t, LabelBuggy, got.Label)
	assert.Equal(t, row.Circuit, got.Circuit)
	require.Len(t, got.Records, 1)
	assert.Equal(t, rec.Kind, got.Records[0].Kind)
	assert.Equal(t, rec.Location, got.Records[0].Location)
	assert.Equal(t, rec.Description, got.Records[0].Description)
	require.NotNil(t, got.Records[0].Before)
	assert.Equal(t, op, *got.Records[0].Before.Op)
	assert.Nil(t, got.Records[0].After)
}

func TestWriteCircuit_DuplicateIDIsIgnored(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	rec := &inject.Record{Kind: inject.KindGateDeletion, Location: []int{0}, Description: "gate h on qubits [0] removed"}
	row := sampleRow("row-1", 1, LabelBuggy, rec)

	require.NoError(t, s.WriteCircuit(ctx, row))
	require.NoError(t, s.WriteCircuit(ctx, row))

	got, err := s.ReadCircuit(ctx, "row-1")
	require.NoError(t, err)
	assert.Len(t, got.Records, 1, "replayed write must not double-count records")

	counts, err := s.CountByLabel(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{LabelBuggy: 1}, counts)
}

func TestReadCircuit_Missing(t *testing.T) {
	s := openTemp(t)

	got, err := s.ReadCircuit(context.Background(), "no-such-row")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, IsNotFound(err))

	var ne *NotFoundError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "no-such-row", ne.ID)
}

func TestListByLabel_DeterministicOrder(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.WriteCircuit(ctx, sampleRow("row-b", 2, LabelClean)))
	require.NoError(t, s.WriteCircuit(ctx, sampleRow("row-a", 1, LabelClean)))
	require.NoError(t, s.WriteCircuit(ctx, sampleRow("row-c", 3, LabelBuggy,
		&inject.Record{Kind: inject.KindOrderingSwap, Location: []int{0, 1}, Description: "gates at 0 and 1 swapped"})))

	clean, err := s.ListByLabel(ctx, LabelClean)
	require.NoError(t, err)
	require.Len(t, clean, 2)
	assert.Equal(t, "row-a", clean[0].ID)
	assert.Equal(t, "row-b", clean[1].ID)

	buggy, err := s.ListByLabel(ctx, LabelBuggy)
	require.NoError(t, err)
	require.Len(t, buggy, 1)
	assert.Len(t, buggy[0].Records, 1)
}

func TestListByLabel_EmptyIsNotNil(t *testing.T) {
	s := openTemp(t)

	got, err := s.ListByLabel(context.Background(), LabelClean)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCountByLabel(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.WriteCircuit(ctx, sampleRow("row-1", 1, LabelClean)))
	require.NoError(t, s.WriteCircuit(ctx, sampleRow("row-2", 2, LabelClean)))
	require.NoError(t, s.WriteCircuit(ctx, sampleRow("row-3", 3, LabelBuggy)))

	counts, err := s.CountByLabel(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{LabelClean: 2, LabelBuggy: 1}, counts)
}
