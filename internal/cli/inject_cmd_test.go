package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qglitch/internal/circuit"
	"github.com/roach88/qglitch/internal/inject"
)

func runInjectCommand(t *testing.T, format string, stdin []byte, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewInjectCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	if stdin != nil {
		cmd.SetIn(bytes.NewReader(stdin))
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestInjectGateDeletion(t *testing.T) {
	path := writeCircuitFixture(t, bellFixture())

	out, err := runInjectCommand(t, "json", nil,
		path, "--kinds", "gate_deletion", "--seed", "1")
	require.NoError(t, err)

	var payload struct {
		Circuit *circuit.Circuit `json:"circuit"`
		Records []*inject.Record `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Len(t, payload.Records, 1)
	assert.Equal(t, inject.KindGateDeletion, payload.Records[0].Kind)
	assert.Len(t, payload.Circuit.Gates, 1)
}

func TestInjectFromStdin(t *testing.T) {
	data, err := json.Marshal(bellFixture())
	require.NoError(t, err)

	out, err := runInjectCommand(t, "text", data,
		"-", "--kinds", "ordering_swap", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "CONTAINS BUGS")
	assert.Contains(t, out, "ordering_swap")
}

func TestInjectNoOpReported(t *testing.T) {
	// No rotations anywhere, so parameter perturbation cannot land.
	out, err := runInjectCommand(t, "text", nil,
		writeCircuitFixture(t, bellFixture()),
		"--kinds", "parameter_perturbation", "--seed", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "no injection landed")
}

func TestInjectRejectsBadFlags(t *testing.T) {
	path := writeCircuitFixture(t, bellFixture())

	_, err := runInjectCommand(t, "text", nil, path, "--kinds", "cosmic_ray")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = runInjectCommand(t, "text", nil, path, "--bugs", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestInjectDeterministic(t *testing.T) {
	path := writeCircuitFixture(t, bellFixture())
	args := []string{path, "--seed", "11", "--bugs", "2"}

	first, err := runInjectCommand(t, "json", nil, args...)
	require.NoError(t, err)
	second, err := runInjectCommand(t, "json", nil, args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
