package store

import (
	"context"
	"fmt"

	"github.com/roach88/graycode/internal/trace"
)

// WriteRun inserts a run record. Duplicate IDs are ignored.
func (s *Store) WriteRun(ctx context.Context, run trace.Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, width, label, format_version)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, run.ID, run.Width, run.Label, run.FormatVersion)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// WriteConversion inserts a conversion record. Duplicate IDs are ignored,
// so rewriting the same conversion is a no-op.
//
// The referenced run must already exist (foreign key constraint).
func (s *Store) WriteConversion(ctx context.Context, c trace.Conversion) error {
	if !c.Op.Valid() {
		return fmt.Errorf("write conversion: unknown op %q", c.Op)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversions (id, run_id, seq, op, width, input, output, error_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		c.ID,
		c.RunID,
		c.Seq,
		string(c.Op),
		c.Width,
		toStored(c.Input),
		toStored(c.Output),
		c.ErrorCode,
	)
	if err != nil {
		return fmt.Errorf("write conversion: %w", err)
	}
	return nil
}

// WriteConversions inserts a batch of conversions in one transaction.
func (s *Store) WriteConversions(ctx context.Context, cs []trace.Conversion) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write conversions: begin tx: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO conversions (id, run_id, seq, op, width, input, output, error_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("write conversions: prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range cs {
		if !c.Op.Valid() {
			return fmt.Errorf("write conversions: seq %d: unknown op %q", c.Seq, c.Op)
		}
		if _, err := stmt.ExecContext(ctx,
			c.ID, c.RunID, c.Seq, string(c.Op), c.Width,
			toStored(c.Input), toStored(c.Output), c.ErrorCode,
		); err != nil {
			return fmt.Errorf("write conversions: seq %d: %w", c.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write conversions: commit: %w", err)
	}
	return nil
}

// toStored maps a uint64 onto SQLite's signed INTEGER by bit pattern.
func toStored(v uint64) int64 {
	return int64(v)
}

// fromStored reverses toStored.
func fromStored(v int64) uint64 {
	return uint64(v)
}
