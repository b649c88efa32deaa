package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/qglitch/internal/circuit"
	"github.com/roach88/qglitch/internal/export"
	"github.com/roach88/qglitch/internal/inject"
)

// InjectOptions holds flags for the inject command.
type InjectOptions struct {
	*RootOptions
	Kinds  string
	Seed   int64
	Bugs   int
	Output string
}

// injectPayload is the JSON shape emitted by the inject command.
type injectPayload struct {
	Circuit *circuit.Circuit `json:"circuit"`
	Records []*inject.Record `json:"records"`
}

// NewInjectCommand creates the inject command.
func NewInjectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InjectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inject <circuit.json>",
		Short: "Inject bugs into a circuit",
		Long: `Inject one or more labeled bugs into a circuit read from a JSON
file (or stdin with "-"). The input circuit is never modified; the mutated
copy and the injection records are written out.

A requested bug kind with no valid target is a reported no-op, not an
error: the records list simply stays shorter than --bugs.

Example:
  qglitch inject circuit.json --kinds gate_deletion --seed 7
  qglitch generate --format json | qglitch inject - --bugs 2`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInject(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kinds, "kinds", "", "comma-separated bug kinds to draw from (full taxonomy if empty)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 7, "PRNG seed")
	cmd.Flags().IntVar(&opts.Bugs, "bugs", 1, "number of injections to attempt")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write output to file instead of stdout")

	return cmd
}

func runInject(opts *InjectOptions, path string, cmd *cobra.Command) error {
	if opts.Bugs < 1 {
		return NewExitError(ExitCommandError, "--bugs must be at least 1")
	}

	c, err := readCircuitFile(cmd, path)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading circuit", err)
	}

	kinds, err := inject.ParseKinds(opts.Kinds)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --kinds", err)
	}

	injector := inject.NewSeeded(opts.Seed)
	var records []*inject.Record
	for i := 0; i < opts.Bugs; i++ {
		next, rec, err := injector.InjectRandom(c, kinds...)
		if err != nil {
			return WrapExitError(ExitCommandError, "injection failed", err)
		}
		c = next
		if rec != nil {
			records = append(records, rec)
		}
	}

	if opts.Format == "json" {
		data, err := json.MarshalIndent(injectPayload{Circuit: c, Records: records}, "", "  ")
		if err != nil {
			return WrapExitError(ExitCommandError, "encoding result", err)
		}
		return writeOutput(cmd, opts.Output, append(data, '\n'))
	}

	text := export.Text(c, records...)
	if len(records) == 0 {
		text += fmt.Sprintf("no injection landed (%d attempt(s) were no-ops)\n", opts.Bugs)
	}
	return writeOutput(cmd, opts.Output, []byte(text))
}
