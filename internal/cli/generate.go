package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/roach88/qglitch/internal/circuit"
	"github.com/roach88/qglitch/internal/export"
	"github.com/roach88/qglitch/internal/generate"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Qubits      int
	Depth       int
	Gates       string
	Policy      string
	Seed        int64
	Measure     bool
	RandomBasis bool
	Config      string
	Output      string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random circuit",
		Long: `Generate a seeded random circuit.

With --format json the command emits the bare circuit JSON, so it pipes
straight into the other commands:

  qglitch generate -n 4 -d 6 --seed 42 --format json | qglitch inject -

Example:
  qglitch generate -n 3 -d 5 --gates h,x,cx --measure
  qglitch generate --config examples/generate.cue --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Qubits, "qubits", "n", 3, "number of qubits")
	cmd.Flags().IntVarP(&opts.Depth, "depth", "d", 5, "number of layers")
	cmd.Flags().StringVar(&opts.Gates, "gates", "", "comma-separated gate palette (default palette if empty)")
	cmd.Flags().StringVar(&opts.Policy, "policy", string(generate.PolicyRandom), "gate selection policy (random|sequential)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 42, "PRNG seed")
	cmd.Flags().BoolVar(&opts.Measure, "measure", false, "append terminal measurements")
	cmd.Flags().BoolVar(&opts.RandomBasis, "random-basis", false, "randomize measurement bases (implies --measure)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "CUE config file (overrides shape flags)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write output to file instead of stdout")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	cfg, err := buildGenerateConfig(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid generator configuration", err)
	}

	c, err := generate.Generate(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid generator configuration", err)
	}

	if opts.Format == "json" {
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return WrapExitError(ExitCommandError, "encoding circuit", err)
		}
		return writeOutput(cmd, opts.Output, append(data, '\n'))
	}
	return writeOutput(cmd, opts.Output, []byte(export.Text(c)))
}

func buildGenerateConfig(opts *GenerateOptions) (generate.Config, error) {
	if opts.Config != "" {
		return LoadGenerateConfig(opts.Config)
	}

	palette, err := circuit.ParsePalette(opts.Gates)
	if err != nil {
		return generate.Config{}, err
	}
	return generate.Config{
		NumQubits:   opts.Qubits,
		Depth:       opts.Depth,
		Palette:     palette,
		Policy:      generate.Policy(opts.Policy),
		Seed:        opts.Seed,
		Measure:     opts.Measure || opts.RandomBasis,
		RandomBasis: opts.RandomBasis,
	}, nil
}
