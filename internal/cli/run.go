package cli

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/qglitch/internal/sim"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Shots int
	Seed  int64
}

// runPayload is the JSON shape emitted by the run command.
type runPayload struct {
	Shots  int        `json:"shots"`
	Counts sim.Counts `json:"counts"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <circuit.json>",
		Short: "Simulate a circuit and report measurement counts",
		Long: `Simulate a circuit read from a JSON file (or stdin with "-") on a
statevector backend and sample measurement outcomes. Bitstrings list qubit
0 leftmost. The circuit must pass validation; corrupted circuits exit 1
with the violation list.

Example:
  qglitch run circuit.json --shots 2048 --seed 7
  qglitch generate --measure --format json | qglitch run -`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Shots, "shots", 1024, "number of measurement samples")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 7, "sampling PRNG seed")

	return cmd
}

func runRun(opts *RunOptions, path string, cmd *cobra.Command) error {
	c, err := readCircuitFile(cmd, path)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading circuit", err)
	}

	counts, err := sim.Run(c, opts.Shots, rand.New(rand.NewSource(opts.Seed)))
	if err != nil {
		if sim.IsInvalidCircuit(err) {
			return WrapExitError(ExitFailure, "circuit is not simulatable", err)
		}
		return WrapExitError(ExitCommandError, "simulation failed", err)
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	return formatter.SuccessText(renderCounts(opts.Shots, counts), runPayload{
		Shots:  opts.Shots,
		Counts: counts,
	})
}

func renderCounts(shots int, counts sim.Counts) string {
	bitstrings := make([]string, 0, len(counts))
	for bits := range counts {
		bitstrings = append(bitstrings, bits)
	}
	sort.Strings(bitstrings)

	var b strings.Builder
	fmt.Fprintf(&b, "Shots: %d\n", shots)
	for _, bits := range bitstrings {
		n := counts[bits]
		fmt.Fprintf(&b, "  %s  %6d  (%.1f%%)\n", bits, n, 100*float64(n)/float64(shots))
	}
	return b.String()
}
