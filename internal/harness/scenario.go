package harness

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/qglitch/internal/circuit"
	"github.com/roach88/qglitch/internal/generate"
	"github.com/roach88/qglitch/internal/inject"
)

// Scenario defines one declarative injection test.
// Exactly one of Circuit or Generate provides the starting circuit.
type Scenario struct {
	// Name uniquely identifies this scenario. Doubles as the golden file
	// name for pinned scenarios.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Seed drives every injection in the scenario.
	Seed int64 `yaml:"seed"`

	// Circuit spells out the starting circuit gate by gate.
	Circuit *CircuitSpec `yaml:"circuit,omitempty"`

	// Generate describes the starting circuit as a generator run.
	Generate *GenerateSpec `yaml:"generate,omitempty"`

	// Inject lists the bug kinds to apply, in order.
	Inject []InjectStep `yaml:"inject,omitempty"`

	// Assertions validate the final circuit and the injection records.
	Assertions []Assertion `yaml:"assertions"`
}

// GenerateSpec is the YAML spelling of a generator configuration.
type GenerateSpec struct {
	NumQubits   int      `yaml:"num_qubits"`
	Depth       int      `yaml:"depth"`
	Palette     []string `yaml:"palette,omitempty"`
	Policy      string   `yaml:"policy,omitempty"`
	Seed        int64    `yaml:"seed"`
	Measure     bool     `yaml:"measure,omitempty"`
	RandomBasis bool     `yaml:"random_basis,omitempty"`
}

// toConfig converts the YAML spelling to a generator config, applying the
// same defaults the CLI applies.
func (g *GenerateSpec) toConfig() (generate.Config, error) {
	palette, err := circuit.ParsePalette(strings.Join(g.Palette, ","))
	if err != nil {
		return generate.Config{}, err
	}
	policy := generate.Policy(g.Policy)
	if g.Policy == "" {
		policy = generate.PolicyRandom
	}
	return generate.Config{
		NumQubits:   g.NumQubits,
		Depth:       g.Depth,
		Palette:     palette,
		Policy:      policy,
		Seed:        g.Seed,
		Measure:     g.Measure,
		RandomBasis: g.RandomBasis,
	}, nil
}

// CircuitSpec is the YAML spelling of a circuit.
type CircuitSpec struct {
	NumQubits    int               `yaml:"num_qubits"`
	Gates        []GateSpec        `yaml:"gates,omitempty"`
	Measurements []MeasurementSpec `yaml:"measurements,omitempty"`
}

// GateSpec is the YAML spelling of one op.
type GateSpec struct {
	Kind      string   `yaml:"kind"`
	Qubits    []int    `yaml:"qubits"`
	Parameter *float64 `yaml:"parameter,omitempty"`
	Layer     int      `yaml:"layer,omitempty"`
	Flags     []string `yaml:"flags,omitempty"`
}

// MeasurementSpec is the YAML spelling of one measurement.
type MeasurementSpec struct {
	Qubit int      `yaml:"qubit"`
	Basis string   `yaml:"basis"`
	Flags []string `yaml:"flags,omitempty"`
}

// InjectStep applies one bug kind.
type InjectStep struct {
	Kind string `yaml:"kind"`
}

// Assertion validates the scenario outcome.
type Assertion struct {
	// Type selects the check:
	// - "gate_count": final circuit has exactly Count gates
	// - "measurement_count": final circuit has exactly Count measurements
	// - "valid": final circuit validity equals Want
	// - "violation_code": a violation with Code is present
	// - "violation_count": exactly Count violations
	// - "record_kind": step Step produced a record of kind Kind
	// - "no_op": step Step produced no record
	// - "flag_present": some op or measurement carries Flag
	Type string `yaml:"type"`

	Count int    `yaml:"count,omitempty"`
	Want  bool   `yaml:"want,omitempty"`
	Code  string `yaml:"code,omitempty"`
	Step  int    `yaml:"step,omitempty"`
	Kind  string `yaml:"kind,omitempty"`
	Flag  string `yaml:"flag,omitempty"`
}

// Assertion type constants.
const (
	AssertGateCount        = "gate_count"
	AssertMeasurementCount = "measurement_count"
	AssertValid            = "valid"
	AssertViolationCode    = "violation_code"
	AssertViolationCount   = "violation_count"
	AssertRecordKind       = "record_kind"
	AssertNoOp             = "no_op"
	AssertFlagPresent      = "flag_present"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" for
	// "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Circuit == nil && s.Generate == nil {
		return fmt.Errorf("one of circuit or generate is required")
	}
	if s.Circuit != nil && s.Generate != nil {
		return fmt.Errorf("circuit and generate are mutually exclusive")
	}
	if s.Circuit != nil && s.Circuit.NumQubits < 1 {
		return fmt.Errorf("circuit.num_qubits must be at least 1")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Inject {
		if _, err := inject.ParseKind(step.Kind); err != nil {
			return fmt.Errorf("inject[%d]: %w", i, err)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, len(s.Inject)); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, steps int) error {
	switch a.Type {
	case AssertGateCount, AssertMeasurementCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertValid:
		// Want defaults to false, which is a legitimate expectation.
	case AssertViolationCode:
		if a.Code == "" {
			return fmt.Errorf("assertions[%d]: code is required for violation_code", index)
		}
	case AssertViolationCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertRecordKind:
		if a.Step < 0 || a.Step >= steps {
			return fmt.Errorf("assertions[%d]: step %d out of range", index, a.Step)
		}
		if _, err := inject.ParseKind(a.Kind); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
	case AssertNoOp:
		if a.Step < 0 || a.Step >= steps {
			return fmt.Errorf("assertions[%d]: step %d out of range", index, a.Step)
		}
	case AssertFlagPresent:
		if a.Flag == "" {
			return fmt.Errorf("assertions[%d]: flag is required for flag_present", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

// buildCircuit materializes the scenario's starting circuit.
func (s *Scenario) buildCircuit() (*circuit.Circuit, error) {
	if s.Generate != nil {
		cfg, err := s.Generate.toConfig()
		if err != nil {
			return nil, err
		}
		return generate.Generate(cfg)
	}

	c := &circuit.Circuit{NumQubits: s.Circuit.NumQubits}
	for _, g := range s.Circuit.Gates {
		c.Gates = append(c.Gates, circuit.GateOp{
			Kind:      circuit.GateKind(g.Kind),
			Qubits:    g.Qubits,
			Parameter: g.Parameter,
			Layer:     g.Layer,
			Flags:     g.Flags,
		})
	}
	for _, m := range s.Circuit.Measurements {
		c.Measurements = append(c.Measurements, circuit.Measurement{
			Qubit: m.Qubit,
			Basis: circuit.Basis(m.Basis),
			Flags: m.Flags,
		})
	}
	return c, nil
}
