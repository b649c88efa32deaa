package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/qglitch/internal/circuit"
	"github.com/roach88/qglitch/internal/inject"
)

// CircuitRow is one stored circuit with its injection audit trail.
type CircuitRow struct {
	ID          string
	ContentHash string
	Label       string
	Seq         int64
	Circuit     *circuit.Circuit
	Records     []*inject.Record
}

// WriteCircuit inserts a circuit row and its bug records.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - a duplicate row ID is
// silently ignored, including its records, so a replayed write cannot
// double-count bugs.
func (s *Store) WriteCircuit(ctx context.Context, row CircuitRow) error {
	body, err := marshalCircuit(row.Circuit)
	if err != nil {
		return fmt.Errorf("write circuit: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write circuit: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	res, err := tx.ExecContext(ctx, `
		INSERT INTO circuits
		(id, content_hash, label, num_qubits, gate_count, seq, body)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		row.ID,
		row.ContentHash,
		row.Label,
		row.Circuit.NumQubits,
		row.Circuit.GateCount(),
		row.Seq,
		body,
	)
	if err != nil {
		return fmt.Errorf("write circuit: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write circuit: rows affected: %w", err)
	}
	if inserted == 0 {
		// Row already exists; its records were written with it.
		return nil
	}

	for _, rec := range row.Records {
		if err := writeBugRecord(ctx, tx, row.ID, row.Seq, rec); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write circuit: commit: %w", err)
	}
	return nil
}

func writeBugRecord(ctx context.Context, tx *sql.Tx, circuitID string, seq int64, rec *inject.Record) error {
	location, err := marshalLocation(rec.Location)
	if err != nil {
		return fmt.Errorf("write bug record: %w", err)
	}
	before, err := marshalSnapshot(rec.Before)
	if err != nil {
		return fmt.Errorf("write bug record: %w", err)
	}
	after, err := marshalSnapshot(rec.After)
	if err != nil {
		return fmt.Errorf("write bug record: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bug_records
		(circuit_id, kind, location, description, before_state, after_state, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		circuitID,
		string(rec.Kind),
		location,
		rec.Description,
		before,
		after,
		seq,
	)
	if err != nil {
		return fmt.Errorf("write bug record: %w", err)
	}
	return nil
}
