package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/qglitch/internal/circuit"
	"github.com/roach88/qglitch/internal/dataset"
	"github.com/roach88/qglitch/internal/generate"
	"github.com/roach88/qglitch/internal/inject"
	"github.com/roach88/qglitch/internal/store"
)

// DatasetOptions holds flags for the dataset command.
type DatasetOptions struct {
	*RootOptions
	DB     string
	Config string

	Count    int
	BugRatio float64
	Bugs     int
	Kinds    string
	Seed     int64

	Qubits      int
	Depth       int
	Gates       string
	Policy      string
	GenSeed     int64
	Measure     bool
	RandomBasis bool
}

// datasetPayload is the JSON shape emitted by the dataset command.
type datasetPayload struct {
	Clean  int      `json:"clean"`
	Buggy  int      `json:"buggy"`
	NoOps  int      `json:"no_ops"`
	RowIDs []string `json:"row_ids"`
}

// NewDatasetCommand creates the dataset command.
func NewDatasetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DatasetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Build a labeled clean/buggy circuit dataset",
		Long: `Build a SQLite dataset of generated circuits, a seeded fraction of
which carry injected bugs with their injection records. Every row is
labeled clean or buggy by what actually changed, so all-no-op injection
attempts stay clean.

Example:
  qglitch dataset --db circuits.db --count 200 --bug-ratio 0.5 --seed 7
  qglitch dataset --db circuits.db --config examples/dataset.cue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDataset(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "SQLite database path (required)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "CUE config file (overrides shape flags)")

	cmd.Flags().IntVar(&opts.Count, "count", 100, "number of circuits to build")
	cmd.Flags().Float64Var(&opts.BugRatio, "bug-ratio", 0.5, "fraction of circuits selected for injection")
	cmd.Flags().IntVar(&opts.Bugs, "bugs", 1, "injections attempted per selected circuit")
	cmd.Flags().StringVar(&opts.Kinds, "kinds", "", "comma-separated bug kinds to draw from (full taxonomy if empty)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 7, "dataset PRNG seed (selection and injection)")

	cmd.Flags().IntVarP(&opts.Qubits, "qubits", "n", 3, "number of qubits per circuit")
	cmd.Flags().IntVarP(&opts.Depth, "depth", "d", 5, "number of layers per circuit")
	cmd.Flags().StringVar(&opts.Gates, "gates", "", "comma-separated gate palette (default palette if empty)")
	cmd.Flags().StringVar(&opts.Policy, "policy", string(generate.PolicyRandom), "gate selection policy (random|sequential)")
	cmd.Flags().Int64Var(&opts.GenSeed, "gen-seed", 42, "base generator seed (incremented per row)")
	cmd.Flags().BoolVar(&opts.Measure, "measure", false, "append terminal measurements")
	cmd.Flags().BoolVar(&opts.RandomBasis, "random-basis", false, "randomize measurement bases (implies --measure)")

	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runDataset(opts *DatasetOptions, cmd *cobra.Command) error {
	cfg, err := buildDatasetConfig(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid dataset configuration", err)
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("%s: opening dataset store", ErrCodeStoreFailed), err)
	}
	defer st.Close()

	builder := dataset.NewBuilder(st, &dataset.UUIDv7Generator{}, dataset.NewClock(), nil)
	result, err := builder.Build(cmd.Context(), cfg)
	if err != nil {
		if dataset.IsConfigError(err) || generate.IsConfigError(err) {
			return WrapExitError(ExitCommandError, "invalid dataset configuration", err)
		}
		return WrapExitError(ExitCommandError, "building dataset", err)
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Wrote %d circuit(s) to %s\n", len(result.RowIDs), opts.DB)
	fmt.Fprintf(&text, "  clean: %d\n", result.Clean)
	fmt.Fprintf(&text, "  buggy: %d\n", result.Buggy)
	if result.NoOps > 0 {
		fmt.Fprintf(&text, "  kept clean by no-op injections: %d\n", result.NoOps)
	}
	return formatter.SuccessText(text.String(), datasetPayload{
		Clean:  result.Clean,
		Buggy:  result.Buggy,
		NoOps:  result.NoOps,
		RowIDs: result.RowIDs,
	})
}

func buildDatasetConfig(opts *DatasetOptions) (dataset.Config, error) {
	if opts.Config != "" {
		return LoadDatasetConfig(opts.Config)
	}

	palette, err := circuit.ParsePalette(opts.Gates)
	if err != nil {
		return dataset.Config{}, err
	}
	kinds, err := inject.ParseKinds(opts.Kinds)
	if err != nil {
		return dataset.Config{}, err
	}
	return dataset.Config{
		Count:          opts.Count,
		BugRatio:       opts.BugRatio,
		BugsPerCircuit: opts.Bugs,
		Kinds:          kinds,
		Seed:           opts.Seed,
		Generator: generate.Config{
			NumQubits:   opts.Qubits,
			Depth:       opts.Depth,
			Palette:     palette,
			Policy:      generate.Policy(opts.Policy),
			Seed:        opts.GenSeed,
			Measure:     opts.Measure || opts.RandomBasis,
			RandomBasis: opts.RandomBasis,
		},
	}, nil
}
