package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qglitch/internal/circuit"
)

func runGenerateCommand(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewGenerateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestGenerateJSON(t *testing.T) {
	out, err := runGenerateCommand(t, "json",
		"-n", "2", "-d", "4", "--gates", "h,x", "--seed", "42")
	require.NoError(t, err)

	var c circuit.Circuit
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, 2, c.NumQubits)
	// One single-qubit gate rooted at each qubit, every layer.
	assert.Len(t, c.Gates, 8)
	assert.True(t, c.Valid())
	assert.Empty(t, c.Measurements)
}

func TestGenerateText(t *testing.T) {
	out, err := runGenerateCommand(t, "text",
		"-n", "3", "-d", "2", "--gates", "h,cx", "--measure")
	require.NoError(t, err)
	assert.Contains(t, out, "QUANTUM CIRCUIT")
	assert.Contains(t, out, "Qubits: 3, Gates: 6")
	assert.Contains(t, out, "Z-basis")
}

func TestGenerateDeterministic(t *testing.T) {
	args := []string{"-n", "4", "-d", "6", "--seed", "99", "--random-basis"}
	first, err := runGenerateCommand(t, "json", args...)
	require.NoError(t, err)
	second, err := runGenerateCommand(t, "json", args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	_, err := runGenerateCommand(t, "text", "-n", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = runGenerateCommand(t, "text", "--gates", "h,warp")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = runGenerateCommand(t, "text", "--policy", "clockwise")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGenerateFromConfigFile(t *testing.T) {
	path := writeTempConfig(t, `
generate: {
	num_qubits: 3
	depth:      5
	palette: ["h", "x", "cx"]
	policy:  "sequential"
	seed:    7
	measure: true
}
`)

	out, err := runGenerateCommand(t, "json", "--config", path)
	require.NoError(t, err)

	var c circuit.Circuit
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, 3, c.NumQubits)
	assert.Len(t, c.Gates, 15)
	assert.Len(t, c.Measurements, 3)
	// Sequential policy cycles the palette by layer, three placements each.
	assert.Equal(t, circuit.GateH, c.Gates[0].Kind)
	assert.Equal(t, circuit.GateX, c.Gates[3].Kind)
	assert.Equal(t, circuit.GateCX, c.Gates[6].Kind)
}

func TestGenerateToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circuit.json")
	_, err := runGenerateCommand(t, "json",
		"-n", "2", "-d", "3", "--gates", "h,x", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var c circuit.Circuit
	require.NoError(t, json.Unmarshal(data, &c))
	assert.Equal(t, 2, c.NumQubits)
}
