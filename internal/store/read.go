package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/graycode/internal/trace"
)

// ErrRunNotFound is returned when a run ID has no record.
var ErrRunNotFound = errors.New("run not found")

// ReadRun returns the run record with the given ID.
func (s *Store) ReadRun(ctx context.Context, runID string) (trace.Run, error) {
	var run trace.Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, width, label, format_version FROM runs WHERE id = ?
	`, runID).Scan(&run.ID, &run.Width, &run.Label, &run.FormatVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return trace.Run{}, fmt.Errorf("read run %s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return trace.Run{}, fmt.Errorf("read run %s: %w", runID, err)
	}
	return run, nil
}

// ListRuns returns all run IDs in ascending order. UUIDv7 IDs sort by
// creation time.
func (s *Store) ListRuns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM runs ORDER BY id COLLATE BINARY ASC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return ids, nil
}

// ReadConversions returns all conversions of a run ordered by seq, then ID.
// Returns an empty slice (not nil) if the run has no conversions.
func (s *Store) ReadConversions(ctx context.Context, runID string) ([]trace.Conversion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, seq, op, width, input, output, error_code
		FROM conversions
		WHERE run_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query conversions: %w", err)
	}
	defer rows.Close()

	conversions := []trace.Conversion{}
	for rows.Next() {
		var (
			c             trace.Conversion
			op            string
			input, output int64
		)
		if err := rows.Scan(&c.ID, &c.RunID, &c.Seq, &op, &c.Width, &input, &output, &c.ErrorCode); err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		c.Op = trace.Op(op)
		c.Input = fromStored(input)
		c.Output = fromStored(output)
		conversions = append(conversions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversions: %w", err)
	}
	return conversions, nil
}
