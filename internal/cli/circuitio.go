package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/qglitch/internal/circuit"
)

// readCircuitFile loads a circuit from a JSON file. "-" reads stdin so
// commands compose in a pipeline (generate | inject | run).
func readCircuitFile(cmd *cobra.Command, path string) (*circuit.Circuit, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeBadCircuit, Message: fmt.Sprintf("reading circuit: %v", err)}
	}

	var c circuit.Circuit
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &LoadError{Code: ErrCodeBadCircuit, Message: fmt.Sprintf("parsing circuit JSON: %v", err)}
	}
	if c.NumQubits < 1 {
		return nil, &LoadError{Code: ErrCodeBadCircuit, Message: "circuit must declare num_qubits >= 1"}
	}
	return &c, nil
}

// writeOutput writes rendered bytes to a file, or to stdout when path is
// empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return WrapExitError(ExitCommandError, "writing output file", err)
	}
	return nil
}
