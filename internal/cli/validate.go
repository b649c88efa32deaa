package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/qglitch/internal/circuit"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// validationPayload is the JSON shape emitted by the validate command.
type validationPayload struct {
	Valid      bool                `json:"valid"`
	Violations []circuit.Violation `json:"violations,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <circuit.json>",
		Short: "Check a circuit for structural violations",
		Long: `Check a circuit read from a JSON file (or stdin with "-") against
the structural rules: known gate kinds, matching arities, in-range and
distinct qubits, rotation parameters, and measurement bases.

Exits 0 when the circuit is valid and 1 when violations are found.

Example:
  qglitch validate circuit.json
  qglitch inject circuit.json --format json | jq .circuit | qglitch validate -`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	c, err := readCircuitFile(cmd, path)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading circuit", err)
	}

	violations := c.Validate()

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	var text strings.Builder
	if len(violations) == 0 {
		text.WriteString("circuit is valid\n")
	} else {
		fmt.Fprintf(&text, "circuit has %d violation(s):\n", len(violations))
		for _, v := range violations {
			fmt.Fprintf(&text, "  %s\n", v)
		}
	}
	if err := formatter.SuccessText(text.String(), validationPayload{
		Valid:      len(violations) == 0,
		Violations: violations,
	}); err != nil {
		return err
	}

	if len(violations) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d violation(s)", len(violations)))
	}
	return nil
}
