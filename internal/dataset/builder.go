package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/roach88/qglitch/internal/circuit"
	"github.com/roach88/qglitch/internal/generate"
	"github.com/roach88/qglitch/internal/inject"
	"github.com/roach88/qglitch/internal/store"
)

// ConfigError describes an invalid dataset configuration.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid dataset config: %s: %s", e.Field, e.Message)
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// Config describes one dataset build.
type Config struct {
	// Count is the number of circuits to emit.
	Count int `json:"count"`

	// BugRatio is the probability that a circuit passes through the
	// injector. 0 emits a fully clean dataset, 1 a fully buggy one.
	BugRatio float64 `json:"bug_ratio"`

	// BugsPerCircuit is how many injections each buggy circuit receives.
	// Zero means one.
	BugsPerCircuit int `json:"bugs_per_circuit,omitempty"`

	// Kinds restricts which bug kinds may be injected. Empty means the
	// full taxonomy.
	Kinds []inject.Kind `json:"kinds,omitempty"`

	// Generator is the per-circuit shape. Circuit i is generated with
	// Generator.Seed + i, so every row differs while the build stays
	// reproducible.
	Generator generate.Config `json:"generator"`

	// Seed drives the buggy/clean coin flips and all injections.
	Seed int64 `json:"seed"`
}

// Validate checks the configuration, fail-fast on the first problem.
func (cfg *Config) Validate() error {
	if cfg.Count < 1 {
		return &ConfigError{Field: "count", Message: "must be at least 1"}
	}
	if cfg.BugRatio < 0 || cfg.BugRatio > 1 {
		return &ConfigError{Field: "bug_ratio", Message: "must be in [0, 1]"}
	}
	if cfg.BugsPerCircuit < 0 {
		return &ConfigError{Field: "bugs_per_circuit", Message: "must not be negative"}
	}
	for _, k := range cfg.Kinds {
		if !k.Valid() {
			return &ConfigError{Field: "kinds", Message: fmt.Sprintf("unknown bug kind %q", k)}
		}
	}
	return cfg.Generator.Validate()
}

// Result summarizes one build.
type Result struct {
	Clean  int      `json:"clean"`
	Buggy  int      `json:"buggy"`
	NoOps  int      `json:"no_ops"`
	RowIDs []string `json:"row_ids"`
}

// Builder emits labeled circuits into a store.
type Builder struct {
	store  *store.Store
	tokens TokenGenerator
	clock  *Clock
	logger *slog.Logger
}

// NewBuilder wires a builder. A nil logger falls back to slog.Default.
func NewBuilder(st *store.Store, tokens TokenGenerator, clock *Clock, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{store: st, tokens: tokens, clock: clock, logger: logger}
}

// Build generates cfg.Count circuits, injects bugs into roughly BugRatio of
// them, and persists every row with its label and records.
//
// A circuit whose every injection attempt was a no-op stays clean: the
// label reflects what actually changed, not what was attempted. Such rows
// are tallied in Result.NoOps.
func (b *Builder) Build(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bugs := cfg.BugsPerCircuit
	if bugs == 0 {
		bugs = 1
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	injector := inject.New(rng)

	res := &Result{}
	for i := 0; i < cfg.Count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build interrupted at row %d: %w", i, err)
		}

		gcfg := cfg.Generator
		gcfg.Seed += int64(i)
		c, err := generate.Generate(gcfg)
		if err != nil {
			return nil, fmt.Errorf("generate row %d: %w", i, err)
		}

		var records []*inject.Record
		if rng.Float64() < cfg.BugRatio {
			c, records, err = injectBugs(injector, c, bugs, cfg.Kinds)
			if err != nil {
				return nil, fmt.Errorf("inject row %d: %w", i, err)
			}
			if len(records) == 0 {
				res.NoOps++
			}
		}

		label := store.LabelClean
		if len(records) > 0 {
			label = store.LabelBuggy
		}

		hash, err := circuit.ContentHash(c)
		if err != nil {
			return nil, fmt.Errorf("hash row %d: %w", i, err)
		}

		row := store.CircuitRow{
			ID:          b.tokens.Generate(),
			ContentHash: hash,
			Label:       label,
			Seq:         b.clock.Next(),
			Circuit:     c,
			Records:     records,
		}
		if err := b.store.WriteCircuit(ctx, row); err != nil {
			return nil, fmt.Errorf("persist row %d: %w", i, err)
		}

		if label == store.LabelBuggy {
			res.Buggy++
		} else {
			res.Clean++
		}
		res.RowIDs = append(res.RowIDs, row.ID)

		b.logger.Debug("dataset row emitted",
			"row", row.ID,
			"label", label,
			"seq", row.Seq,
			"gates", c.GateCount(),
			"bugs", len(records))
	}

	b.logger.Info("dataset build finished",
		"count", cfg.Count,
		"clean", res.Clean,
		"buggy", res.Buggy,
		"no_ops", res.NoOps)
	return res, nil
}

// injectBugs applies up to n injections, keeping only the ones that landed.
func injectBugs(injector *inject.Injector, c *circuit.Circuit, n int, kinds []inject.Kind) (*circuit.Circuit, []*inject.Record, error) {
	var records []*inject.Record
	for i := 0; i < n; i++ {
		next, rec, err := injector.InjectRandom(c, kinds...)
		if err != nil {
			return nil, nil, err
		}
		c = next
		if rec != nil {
			records = append(records, rec)
		}
	}
	return c, records, nil
}
