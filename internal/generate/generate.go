package generate

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/roach88/qglitch/internal/circuit"
)

// Policy selects how gates are chosen from the palette.
type Policy string

const (
	// PolicyRandom draws uniformly from the palette at every placement.
	PolicyRandom Policy = "random"

	// PolicySequential walks the palette round-robin, indexed by layer
	// number modulo palette length. Every placement in one layer uses the
	// same gate kind.
	PolicySequential Policy = "sequential"
)

// ValidPolicies lists the supported selection policies.
var ValidPolicies = []Policy{PolicyRandom, PolicySequential}

// Config holds the parameters for one generation run.
type Config struct {
	NumQubits int                `json:"num_qubits"`
	Depth     int                `json:"depth"`
	Palette   []circuit.GateKind `json:"palette"`
	Policy    Policy             `json:"policy"`
	Seed      int64              `json:"seed"`

	// Measure appends one terminal measurement per qubit.
	Measure bool `json:"measure"`

	// RandomBasis draws each measurement basis from {X, Y, Z} instead of
	// defaulting to Z. Ignored unless Measure is set.
	RandomBasis bool `json:"random_basis"`
}

// Validate checks the configuration and returns the first problem found.
func (cfg *Config) Validate() error {
	if cfg.NumQubits <= 0 {
		return &ConfigError{
			Code:    ErrCodeBadQubits,
			Field:   "num_qubits",
			Message: fmt.Sprintf("must be positive, got %d", cfg.NumQubits),
		}
	}
	if cfg.Depth <= 0 {
		return &ConfigError{
			Code:    ErrCodeBadDepth,
			Field:   "depth",
			Message: fmt.Sprintf("must be positive, got %d", cfg.Depth),
		}
	}
	if len(cfg.Palette) == 0 {
		return &ConfigError{
			Code:    ErrCodeBadPalette,
			Field:   "palette",
			Message: "must name at least one gate",
		}
	}
	for _, kind := range cfg.Palette {
		if !circuit.Known(kind) {
			return &ConfigError{
				Code:    ErrCodeBadPalette,
				Field:   "palette",
				Message: fmt.Sprintf("unknown gate %q", kind),
			}
		}
	}
	switch cfg.Policy {
	case PolicyRandom, PolicySequential:
	default:
		return &ConfigError{
			Code:    ErrCodeBadPolicy,
			Field:   "policy",
			Message: fmt.Sprintf("must be %q or %q, got %q", PolicyRandom, PolicySequential, cfg.Policy),
		}
	}
	return nil
}

// Generate builds a clean circuit from the configuration.
//
// For each of Depth layers the generator visits every qubit 0..N-1 and
// places one gate rooted there. A gate whose arity exceeds the register size
// is skipped - a soft constraint, not an error. Multi-qubit participants
// follow the offset-and-wrap rule: an op of arity k rooted at q touches
// q, (q+1) mod N, ..., (q+k-1) mod N, which guarantees distinct indices
// whenever k <= N.
//
// The returned circuit always satisfies the clean-state invariants; see
// circuit.Validate.
func Generate(cfg Config) (*circuit.Circuit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	c := &circuit.Circuit{NumQubits: cfg.NumQubits}

	placed, skipped := 0, 0
	for layer := 0; layer < cfg.Depth; layer++ {
		for q := 0; q < cfg.NumQubits; q++ {
			kind := pickGate(cfg, layer, rng)
			spec, _ := circuit.Spec(kind)

			if spec.Arity > cfg.NumQubits {
				skipped++
				continue
			}

			op := circuit.GateOp{
				Kind:   kind,
				Qubits: wrapQubits(q, spec.Arity, cfg.NumQubits),
				Layer:  layer,
			}
			if spec.Parametric {
				theta := rng.Float64() * 2 * math.Pi
				op.Parameter = &theta
			}
			c.Gates = append(c.Gates, op)
			placed++
		}
	}

	if cfg.Measure {
		for q := 0; q < cfg.NumQubits; q++ {
			basis := circuit.BasisZ
			if cfg.RandomBasis {
				basis = circuit.AllBases[rng.Intn(len(circuit.AllBases))]
			}
			c.Measurements = append(c.Measurements, circuit.Measurement{Qubit: q, Basis: basis})
		}
	}

	slog.Debug("circuit generated",
		"num_qubits", cfg.NumQubits,
		"depth", cfg.Depth,
		"policy", cfg.Policy,
		"seed", cfg.Seed,
		"placed", placed,
		"skipped", skipped,
		"measured", cfg.Measure,
	)

	return c, nil
}

// pickGate selects the gate kind for one placement.
func pickGate(cfg Config, layer int, rng *rand.Rand) circuit.GateKind {
	if cfg.Policy == PolicySequential {
		return cfg.Palette[layer%len(cfg.Palette)]
	}
	return cfg.Palette[rng.Intn(len(cfg.Palette))]
}

// wrapQubits returns the participant indices for an op of the given arity
// rooted at q, using the offset-and-wrap rule.
func wrapQubits(q, arity, numQubits int) []int {
	out := make([]int, arity)
	for i := 0; i < arity; i++ {
		out[i] = (q + i) % numQubits
	}
	return out
}
