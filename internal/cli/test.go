package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/qglitch/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
}

// scenarioResult is the JSON shape for one executed scenario.
type scenarioResult struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Passed   bool     `json:"passed"`
	Failures []string `json:"failures,omitempty"`
}

// testPayload is the JSON shape emitted by the test command.
type testPayload struct {
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Scenarios []scenarioResult `json:"scenarios"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenario.yaml|dir>...",
		Short: "Run injection scenarios from YAML files",
		Long: `Run one or more YAML scenario files through the injection harness
and check their assertions. Directory arguments run every .yaml and .yml
file inside, in name order.

Exits 0 when every scenario passes and 1 when any assertion fails.

Example:
  qglitch test scenarios/ordering_swap.yaml
  qglitch test scenarios/`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(opts, args, cmd)
		},
	}

	return cmd
}

func runTest(opts *TestOptions, args []string, cmd *cobra.Command) error {
	paths, err := collectScenarioPaths(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "collecting scenarios", err)
	}
	if len(paths) == 0 {
		return NewExitError(ExitCommandError, "no scenario files found")
	}

	payload := testPayload{Scenarios: make([]scenarioResult, 0, len(paths))}
	var text strings.Builder
	for _, path := range paths {
		scenario, err := harness.LoadScenario(path)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("loading %s", path), err)
		}

		result, err := harness.Run(scenario)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("running %s", scenario.Name), err)
		}

		sr := scenarioResult{
			Name:     scenario.Name,
			Path:     path,
			Passed:   result.Passed(),
			Failures: result.Failures,
		}
		payload.Scenarios = append(payload.Scenarios, sr)
		if sr.Passed {
			payload.Passed++
			fmt.Fprintf(&text, "PASS  %s\n", scenario.Name)
		} else {
			payload.Failed++
			fmt.Fprintf(&text, "FAIL  %s\n", scenario.Name)
			for _, failure := range result.Failures {
				fmt.Fprintf(&text, "      %s\n", failure)
			}
		}
	}
	fmt.Fprintf(&text, "\n%d passed, %d failed\n", payload.Passed, payload.Failed)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if err := formatter.SuccessText(text.String(), payload); err != nil {
		return err
	}

	if payload.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", payload.Failed))
	}
	return nil
}

// collectScenarioPaths expands directory arguments into their YAML files.
func collectScenarioPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := filepath.Ext(entry.Name())
			if ext == ".yaml" || ext == ".yml" {
				paths = append(paths, filepath.Join(arg, entry.Name()))
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}
