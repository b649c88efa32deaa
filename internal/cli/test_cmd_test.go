package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: deletion_shrinks
description: Deleting a gate drops the gate count by one.
seed: 1
circuit:
  num_qubits: 2
  gates:
    - kind: h
      qubits: [0]
    - kind: cx
      qubits: [0, 1]
inject:
  - kind: gate_deletion
assertions:
  - type: gate_count
    count: 1
  - type: valid
    want: true
`

const failingScenario = `name: impossible_count
description: Asserts a gate count the circuit cannot have.
seed: 1
circuit:
  num_qubits: 1
  gates:
    - kind: h
      qubits: [0]
assertions:
  - type: gate_count
    count: 99
`

func writeScenarioFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runTestCommand(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewTestCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestTestCommandPasses(t *testing.T) {
	path := writeScenarioFile(t, t.TempDir(), "deletion.yaml", passingScenario)

	out, err := runTestCommand(t, "text", path)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS  deletion_shrinks")
	assert.Contains(t, out, "1 passed, 0 failed")
}

func TestTestCommandFailure(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "a_deletion.yaml", passingScenario)
	writeScenarioFile(t, dir, "b_impossible.yaml", failingScenario)

	out, err := runTestCommand(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "PASS  deletion_shrinks")
	assert.Contains(t, out, "FAIL  impossible_count")
	assert.Contains(t, out, "gate_count: want 99, got 1")
	assert.Contains(t, out, "1 passed, 1 failed")
}

func TestTestCommandDirectoryOrder(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "b.yaml", passingScenario)
	writeScenarioFile(t, dir, "a.yml", passingScenario)
	writeScenarioFile(t, dir, "notes.txt", "not a scenario")

	out, err := runTestCommand(t, "text", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 passed, 0 failed")
}

func TestTestCommandRejectsBadScenario(t *testing.T) {
	path := writeScenarioFile(t, t.TempDir(), "bad.yaml", "name: only_a_name\n")

	_, err := runTestCommand(t, "text", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandNoScenarios(t *testing.T) {
	_, err := runTestCommand(t, "text", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no scenario files")
}
