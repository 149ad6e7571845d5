package adapters

import (
	"context"
	"database/sql"

	"github.com/AntonStoeckl/library-lending-go/eventstore"
)

// sqlConn is what *sql.DB and *sqlx.DB have in common.
type sqlConn interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func queryStd(ctx context.Context, primary sqlConn, replica sqlConn, query string, args ...any) (DBRows, error) {
	conn := primary

	if replica != nil && eventstore.GetConsistencyLevel(ctx) == eventstore.EventualConsistency {
		conn = replica
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return &stdRows{rows: rows}, nil
}

func execStd(ctx context.Context, primary sqlConn, query string, args ...any) (DBResult, error) {
	result, err := primary.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return &stdResult{result: result}, nil
}

// stdRows wraps sql.Rows to implement DBRows.
type stdRows struct {
	rows *sql.Rows
}

func (s *stdRows) Next() bool {
	return s.rows.Next()
}

func (s *stdRows) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

func (s *stdRows) Err() error {
	return s.rows.Err()
}

func (s *stdRows) Close() error {
	return s.rows.Close()
}

// stdResult wraps sql.Result to implement DBResult.
type stdResult struct {
	result sql.Result
}

func (s *stdResult) RowsAffected() (int64, error) {
	return s.result.RowsAffected()
}
