package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/okian/pxpstats/internal/domain/model"
	"github.com/okian/pxpstats/internal/domain/query"
)

// Writer is a bulk-load transaction. Nothing it writes is visible to
// sessions until Commit.
type Writer struct {
	tx   *sql.Tx
	rows int64
}

// BeginWrite starts a write transaction.
func (s *SQLiteStore) BeginWrite(ctx context.Context) (*Writer, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotConfigured
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin write: %w", err)
	}
	return &Writer{tx: tx}, nil
}

// Truncate deletes every event and resets id assignment.
func (w *Writer) Truncate(ctx context.Context) error {
	if _, err := w.tx.ExecContext(ctx, "DELETE FROM "+query.Table); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	if _, err := w.tx.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = ?", query.Table); err != nil {
		return fmt.Errorf("reset sequence: %w", err)
	}
	return nil
}

// Insert appends events in their given order; the ID field is ignored and
// assigned by the database.
func (w *Writer) Insert(ctx context.Context, events []model.Event) error {
	for len(events) > 0 {
		n := min(len(events), query.MaxInsertRows)
		chunk := events[:n]
		events = events[n:]

		args := make([]any, 0, n*len(query.InsertColumns))
		for _, e := range chunk {
			args = append(args, insertArgs(e)...)
		}
		if _, err := w.tx.ExecContext(ctx, query.InsertStatement(n), args...); err != nil {
			return fmt.Errorf("insert %d events: %w", n, err)
		}
		w.rows += int64(n)
	}
	return nil
}

// Rows returns the number of events inserted so far.
func (w *Writer) Rows() int64 { return w.rows }

// Commit makes the writes visible.
func (w *Writer) Commit() error {
	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("commit write: %w", err)
	}
	return nil
}

// Rollback discards the writes. It is safe to call after Commit.
func (w *Writer) Rollback() error {
	if err := w.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return fmt.Errorf("rollback write: %w", err)
	}
	return nil
}

// insertArgs lists values in query.InsertColumns order.
func insertArgs(e model.Event) []any {
	return []any{
		e.GameDate, e.SeasonYear, e.TeamName, e.OppTeamName, e.Venue,
		e.Period, e.ClockSeconds, e.SituationType, e.GoalsFor, e.GoalsAgainst,
		e.PlayerName, e.Event, e.Successful, e.XCoord, e.YCoord, e.EventType,
		e.PlayerName2, e.XCoord2, e.YCoord2, e.EventDetail1, e.EventDetail2,
		e.EventDetail3,
	}
}
