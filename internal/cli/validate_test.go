package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qglitch/internal/circuit"
)

func runValidateCommand(t *testing.T, format, path string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{path})
	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateValidCircuit(t *testing.T) {
	out, err := runValidateCommand(t, "text", writeCircuitFixture(t, bellFixture()))
	require.NoError(t, err)
	assert.Contains(t, out, "circuit is valid")
}

func TestValidateInvalidCircuit(t *testing.T) {
	c := &circuit.Circuit{
		NumQubits: 2,
		Gates: []circuit.GateOp{
			{Kind: circuit.GateX, Qubits: []int{5}, Layer: 0},
			{Kind: circuit.GateCX, Qubits: []int{0}, Layer: 1},
		},
	}

	out, err := runValidateCommand(t, "text", writeCircuitFixture(t, c))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "2 violation(s)")
	assert.Contains(t, out, "QUBIT_OUT_OF_RANGE")
	assert.Contains(t, out, "ARITY_MISMATCH")
}

func TestValidateJSON(t *testing.T) {
	c := &circuit.Circuit{
		NumQubits: 1,
		Gates: []circuit.GateOp{
			{Kind: "warp", Qubits: []int{0}, Layer: 0},
		},
	}

	out, err := runValidateCommand(t, "json", writeCircuitFixture(t, c))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var payload validationPayload
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.False(t, payload.Valid)
	require.Len(t, payload.Violations, 1)
	assert.Equal(t, circuit.CodeUnknownKind, payload.Violations[0].Code)
}

func TestValidateMissingFile(t *testing.T) {
	_, err := runValidateCommand(t, "text", "/nonexistent/circuit.json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
