package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/qglitch/internal/circuit"
	"github.com/roach88/qglitch/internal/inject"
)

// Result captures one scenario execution.
type Result struct {
	// Initial is the starting circuit before any injection.
	Initial *circuit.Circuit

	// Final is the circuit after every injection step.
	Final *circuit.Circuit

	// Records holds one entry per injection step, nil where the step was
	// a no-op.
	Records []*inject.Record

	// Failures lists every assertion that did not hold. Empty means the
	// scenario passed.
	Failures []string
}

// Passed reports whether every assertion held.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Run executes a scenario: build the starting circuit, apply each injection
// step with the scenario seed, then evaluate all assertions.
//
// Assertion failures do not return an error; they accumulate in
// Result.Failures so a failing scenario reports everything at once. An
// error means the scenario could not be executed at all.
func Run(scenario *Scenario) (*Result, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return RunWithLogger(scenario, logger)
}

// RunWithLogger is Run with an explicit logger for CLI use.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	initial, err := scenario.buildCircuit()
	if err != nil {
		return nil, fmt.Errorf("scenario %q: build circuit: %w", scenario.Name, err)
	}

	injector := inject.NewSeeded(scenario.Seed)

	result := &Result{Initial: initial, Final: initial}
	for i, step := range scenario.Inject {
		kind, err := inject.ParseKind(step.Kind)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: inject[%d]: %w", scenario.Name, i, err)
		}

		next, rec, err := injector.Inject(result.Final, kind)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: inject[%d]: %w", scenario.Name, i, err)
		}
		result.Final = next
		result.Records = append(result.Records, rec)

		if rec == nil {
			logger.Debug("injection step was a no-op", "scenario", scenario.Name, "step", i, "kind", kind)
		} else {
			logger.Debug("injection step applied", "scenario", scenario.Name, "step", i, "record", rec.String())
		}
	}

	for i, assertion := range scenario.Assertions {
		if failure := evaluate(&assertion, result); failure != "" {
			result.Failures = append(result.Failures, fmt.Sprintf("assertions[%d]: %s", i, failure))
		}
	}

	logger.Info("scenario finished",
		"scenario", scenario.Name,
		"steps", len(scenario.Inject),
		"failures", len(result.Failures))
	return result, nil
}
