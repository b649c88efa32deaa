package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/qglitch/internal/circuit"
	"github.com/roach88/qglitch/internal/inject"
)

// marshalCircuit converts a circuit to JSON TEXT for the body column.
// Struct field order makes the output deterministic without extra
// canonicalization.
func marshalCircuit(c *circuit.Circuit) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal circuit: %w", err)
	}
	return string(data), nil
}

// unmarshalCircuit parses a body column back into a circuit.
func unmarshalCircuit(data string) (*circuit.Circuit, error) {
	var c circuit.Circuit
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("unmarshal circuit: %w", err)
	}
	return &c, nil
}

// marshalLocation converts a record location to a JSON array TEXT.
func marshalLocation(loc []int) (string, error) {
	data, err := json.Marshal(loc)
	if err != nil {
		return "", fmt.Errorf("marshal location: %w", err)
	}
	return string(data), nil
}

func unmarshalLocation(data string) ([]int, error) {
	var loc []int
	if err := json.Unmarshal([]byte(data), &loc); err != nil {
		return nil, fmt.Errorf("unmarshal location: %w", err)
	}
	return loc, nil
}

// marshalSnapshot converts an optional before/after snapshot to TEXT.
// A nil snapshot stores as NULL.
func marshalSnapshot(snap *inject.Snapshot) (sql.NullString, error) {
	if snap == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal snapshot: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func unmarshalSnapshot(data sql.NullString) (*inject.Snapshot, error) {
	if !data.Valid {
		return nil, nil
	}
	var snap inject.Snapshot
	if err := json.Unmarshal([]byte(data.String), &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}
