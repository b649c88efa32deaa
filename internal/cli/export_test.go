package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runExportCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewExportCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestExportQASM(t *testing.T) {
	out, err := runExportCommand(t, writeCircuitFixture(t, bellFixture()), "--to", "qasm")
	require.NoError(t, err)
	assert.Contains(t, out, "OPENQASM 2.0;")
	assert.Contains(t, out, "qreg q[2];")
	assert.Contains(t, out, "cx q[0],q[1];")
	assert.Contains(t, out, "measure q[1] -> c[1];")
}

func TestExportText(t *testing.T) {
	out, err := runExportCommand(t, writeCircuitFixture(t, bellFixture()), "--to", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "QUANTUM CIRCUIT")
	assert.Contains(t, out, "Gate Sequence:")
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.qasm")
	_, err := runExportCommand(t, writeCircuitFixture(t, bellFixture()), "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `include "qelib1.inc";`)
}

func TestExportUnknownTarget(t *testing.T) {
	_, err := runExportCommand(t, writeCircuitFixture(t, bellFixture()), "--to", "svg")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "unknown target format")
}
