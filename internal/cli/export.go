package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/qglitch/internal/export"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	To     string
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <circuit.json>",
		Short: "Render a circuit as OpenQASM 2.0 or annotated text",
		Long: `Render a circuit read from a JSON file (or stdin with "-") to a
target format. Corrupted operations survive the QASM rendering as comment
lines, so exported buggy circuits stay inspectable.

Example:
  qglitch export circuit.json --to qasm -o circuit.qasm
  qglitch generate --measure --format json | qglitch export - --to text`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.To, "to", "qasm", "target format (qasm|text)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write output to file instead of stdout")

	return cmd
}

func runExport(opts *ExportOptions, path string, cmd *cobra.Command) error {
	c, err := readCircuitFile(cmd, path)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading circuit", err)
	}

	var rendered string
	switch opts.To {
	case "qasm":
		rendered = export.QASM(c)
	case "text":
		rendered = export.Text(c)
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown target format %q (valid: qasm, text)", opts.To))
	}

	return writeOutput(cmd, opts.Output, []byte(rendered))
}
