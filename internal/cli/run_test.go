package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qglitch/internal/circuit"
)

func runRunCommand(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRunBellPair(t *testing.T) {
	path := writeCircuitFixture(t, bellFixture())

	out, err := runRunCommand(t, "json", path, "--shots", "128", "--seed", "7")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var payload runPayload
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, 128, payload.Shots)

	total := 0
	for bits, n := range payload.Counts {
		assert.Contains(t, []string{"00", "11"}, bits)
		total += n
	}
	assert.Equal(t, 128, total)
}

func TestRunTextOutput(t *testing.T) {
	out, err := runRunCommand(t, "text",
		writeCircuitFixture(t, bellFixture()), "--shots", "64")
	require.NoError(t, err)
	assert.Contains(t, out, "Shots: 64")
}

func TestRunInvalidCircuitFails(t *testing.T) {
	c := &circuit.Circuit{
		NumQubits: 1,
		Gates: []circuit.GateOp{
			{Kind: circuit.GateX, Qubits: []int{3}, Layer: 0},
		},
	}

	_, err := runRunCommand(t, "text", writeCircuitFixture(t, c))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "not simulatable")
}

func TestRunRejectsBadShots(t *testing.T) {
	_, err := runRunCommand(t, "text",
		writeCircuitFixture(t, bellFixture()), "--shots", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
