package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/qglitch/internal/inject"
)

// ReadCircuit returns one circuit row by ID, including its bug records.
// Returns NotFoundError when the ID has no row.
func (s *Store) ReadCircuit(ctx context.Context, id string) (*CircuitRow, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, content_hash, label, seq, body
		FROM circuits
		WHERE id = ?
	`, id)

	cr, err := scanCircuit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("read circuit: %w", err)
	}

	records, err := s.readBugRecords(ctx, id)
	if err != nil {
		return nil, err
	}
	cr.Records = records

	return cr, nil
}

// ListByLabel returns all circuits with the given label.
// Results are ordered deterministically: ORDER BY seq ASC, id COLLATE
// BINARY ASC. Returns an empty slice (not nil) when nothing matches.
func (s *Store) ListByLabel(ctx context.Context, label string) ([]CircuitRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content_hash, label, seq, body
		FROM circuits
		WHERE label = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, label)
	if err != nil {
		return nil, fmt.Errorf("query circuits: %w", err)
	}
	defer rows.Close()

	out := []CircuitRow{}
	for rows.Next() {
		cr, err := scanCircuit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan circuit: %w", err)
		}
		out = append(out, *cr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate circuits: %w", err)
	}

	for i := range out {
		records, err := s.readBugRecords(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Records = records
	}

	return out, nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCircuit(row scanner) (*CircuitRow, error) {
	var cr CircuitRow
	var body string
	if err := row.Scan(&cr.ID, &cr.ContentHash, &cr.Label, &cr.Seq, &body); err != nil {
		return nil, err
	}

	c, err := unmarshalCircuit(body)
	if err != nil {
		return nil, err
	}
	cr.Circuit = c
	return &cr, nil
}

// readBugRecords returns a circuit's records in insertion order.
func (s *Store) readBugRecords(ctx context.Context, circuitID string) ([]*inject.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, location, description, before_state, after_state
		FROM bug_records
		WHERE circuit_id = ?
		ORDER BY id ASC
	`, circuitID)
	if err != nil {
		return nil, fmt.Errorf("query bug records: %w", err)
	}
	defer rows.Close()

	var records []*inject.Record
	for rows.Next() {
		var kind, location, description string
		var before, after sql.NullString
		if err := rows.Scan(&kind, &location, &description, &before, &after); err != nil {
			return nil, fmt.Errorf("scan bug record: %w", err)
		}

		loc, err := unmarshalLocation(location)
		if err != nil {
			return nil, err
		}
		beforeSnap, err := unmarshalSnapshot(before)
		if err != nil {
			return nil, err
		}
		afterSnap, err := unmarshalSnapshot(after)
		if err != nil {
			return nil, err
		}

		records = append(records, &inject.Record{
			Kind:        inject.Kind(kind),
			Location:    loc,
			Description: description,
			Before:      beforeSnap,
			After:       afterSnap,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bug records: %w", err)
	}

	return records, nil
}
