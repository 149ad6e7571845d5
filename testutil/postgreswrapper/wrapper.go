// Package postgreswrapper creates postgres journals for integration tests, over the adapter
// selected by LIBRARY_TEST_ADAPTER (pgx, sql or sqlx; default pgx) and the database in
// LIBRARY_TEST_DSN (default config.PostgresTestDSN()).
package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/config"
	"github.com/AntonStoeckl/library-lending-go/eventstore/postgresengine"
)

const testTableName = "events_integration_test"

// Wrapper abstracts over the different adapters.
type Wrapper interface {
	GetEventStore() postgresengine.EventStore
	Truncate(ctx context.Context) error
	Close()
}

// PGXPoolWrapper wraps a pgxpool-based journal.
type PGXPoolWrapper struct {
	pool *pgxpool.Pool
	es   postgresengine.EventStore
}

func (w *PGXPoolWrapper) GetEventStore() postgresengine.EventStore {
	return w.es
}

func (w *PGXPoolWrapper) Truncate(ctx context.Context) error {
	_, err := w.pool.Exec(ctx, "TRUNCATE TABLE "+testTableName+" RESTART IDENTITY")
	return err
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps a sql.DB-based journal.
type SQLDBWrapper struct {
	db *sql.DB
	es postgresengine.EventStore
}

func (w *SQLDBWrapper) GetEventStore() postgresengine.EventStore {
	return w.es
}

func (w *SQLDBWrapper) Truncate(ctx context.Context) error {
	_, err := w.db.ExecContext(ctx, "TRUNCATE TABLE "+testTableName+" RESTART IDENTITY")
	return err
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close()
}

// SQLXWrapper wraps a sqlx.DB-based journal.
type SQLXWrapper struct {
	db *sqlx.DB
	es postgresengine.EventStore
}

func (w *SQLXWrapper) GetEventStore() postgresengine.EventStore {
	return w.es
}

func (w *SQLXWrapper) Truncate(ctx context.Context) error {
	_, err := w.db.ExecContext(ctx, "TRUNCATE TABLE "+testTableName+" RESTART IDENTITY")
	return err
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close()
}

// CreateWrapperWithTestConfig connects to the test database, creates the journal table if needed
// and empties it. The wrapper is closed when the test ends.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	ctx := context.Background()
	dsn := os.Getenv("LIBRARY_TEST_DSN")
	if dsn == "" {
		dsn = config.PostgresTestDSN()
	}

	options = append([]postgresengine.Option{postgresengine.WithTableName(testTableName)}, options...)

	var wrapper Wrapper

	switch adapter := strings.ToLower(os.Getenv("LIBRARY_TEST_ADAPTER")); adapter {
	case config.AdapterPGX, "":
		pool, err := config.NewPGXPool(ctx, dsn)
		require.NoError(t, err, "error connecting to DB pool in test setup")
		es, err := postgresengine.NewEventStoreFromPGXPool(pool, options...)
		require.NoError(t, err, "error creating the event store in test setup")
		wrapper = &PGXPoolWrapper{pool: pool, es: es}

	case config.AdapterSQL:
		db, err := config.NewSQLDB(ctx, dsn)
		require.NoError(t, err, "error connecting to DB in test setup")
		es, err := postgresengine.NewEventStoreFromSQLDB(db, options...)
		require.NoError(t, err, "error creating the event store in test setup")
		wrapper = &SQLDBWrapper{db: db, es: es}

	case config.AdapterSQLX:
		db, err := config.NewSQLX(ctx, dsn)
		require.NoError(t, err, "error connecting to DB in test setup")
		es, err := postgresengine.NewEventStoreFromSQLX(db, options...)
		require.NoError(t, err, "error creating the event store in test setup")
		wrapper = &SQLXWrapper{db: db, es: es}

	default:
		panic(fmt.Sprintf("unsupported adapter type from env: %s", adapter))
	}

	t.Cleanup(wrapper.Close)

	require.NoError(t, wrapper.GetEventStore().CreateSchema(ctx), "error creating the journal table")
	require.NoError(t, wrapper.Truncate(ctx), "error cleaning up the journal table")

	return wrapper
}
