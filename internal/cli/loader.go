package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/qglitch/internal/dataset"
	"github.com/roach88/qglitch/internal/generate"
)

// LoadError represents an error that occurred during config loading.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeNotFound     = "E002" // Config file not found
	ErrCodeParseFailed  = "E003" // CUE parse/eval failed
	ErrCodeMissingField = "E004" // Expected top-level field absent
	ErrCodeDecodeFailed = "E005" // CUE value did not decode into the config
	ErrCodeBadCircuit   = "E006" // Circuit file unreadable or malformed
	ErrCodeBadConfig    = "E007" // Config failed semantic validation
	ErrCodeStoreFailed  = "E008" // Dataset store error
)

// loadValue compiles one CUE config file.
func loadValue(path string) (cue.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("config file: %v", err)}
	}

	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return cue.Value{}, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("evaluating CUE: %v", err)}
	}
	return value, nil
}

// LoadGenerateConfig reads a generator configuration from the "generate"
// field of a CUE config file. Semantic validation is left to the caller so
// it can surface generate.ConfigError directly.
func LoadGenerateConfig(path string) (generate.Config, error) {
	var cfg generate.Config

	value, err := loadValue(path)
	if err != nil {
		return cfg, err
	}

	genVal := value.LookupPath(cue.ParsePath("generate"))
	if !genVal.Exists() {
		return cfg, &LoadError{Code: ErrCodeMissingField, Message: fmt.Sprintf("no \"generate\" field in %s", path)}
	}
	if err := genVal.Decode(&cfg); err != nil {
		return cfg, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("decoding generate config: %v", err)}
	}
	return cfg, nil
}

// LoadDatasetConfig reads a dataset build configuration from the "dataset"
// field of a CUE config file. The generator shape lives under
// dataset.generator.
func LoadDatasetConfig(path string) (dataset.Config, error) {
	var cfg dataset.Config

	value, err := loadValue(path)
	if err != nil {
		return cfg, err
	}

	dsVal := value.LookupPath(cue.ParsePath("dataset"))
	if !dsVal.Exists() {
		return cfg, &LoadError{Code: ErrCodeMissingField, Message: fmt.Sprintf("no \"dataset\" field in %s", path)}
	}
	if err := dsVal.Decode(&cfg); err != nil {
		return cfg, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("decoding dataset config: %v", err)}
	}
	return cfg, nil
}
