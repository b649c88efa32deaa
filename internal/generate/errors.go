package generate

import (
	"errors"
	"fmt"
)

// ConfigErrorCode categorizes configuration errors.
type ConfigErrorCode string

const (
	// ErrCodeBadQubits indicates a non-positive qubit count.
	ErrCodeBadQubits ConfigErrorCode = "BAD_NUM_QUBITS"

	// ErrCodeBadDepth indicates a non-positive depth.
	ErrCodeBadDepth ConfigErrorCode = "BAD_DEPTH"

	// ErrCodeBadPalette indicates an empty palette or an unknown gate in it.
	ErrCodeBadPalette ConfigErrorCode = "BAD_PALETTE"

	// ErrCodeBadPolicy indicates an unrecognized selection policy.
	ErrCodeBadPolicy ConfigErrorCode = "BAD_POLICY"
)

// ConfigError represents an invalid generation configuration.
// These are caller mistakes and fail fast before any gate is placed.
type ConfigError struct {
	Code    ConfigErrorCode
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
