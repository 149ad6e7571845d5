// Package postgresengine provides the PostgreSQL implementation of the lending journal.
//
// Events are stored in a single table with a global sequence number. Queries select a "dynamic event
// stream" with an eventstore.Filter, appends are atomic and guarded by the stream's max sequence number.
//
// Supported connections: pgxpool.Pool, sql.DB (lib/pq) and sqlx.DB, each optionally with a read replica.
//
// Usage:
//
//	pool, _ := pgxpool.NewWithConfig(ctx, cfg)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(
//		pool,
//		postgresengine.WithTableName("library_events"),
//		postgresengine.WithLogger(slog.Default()),
//	)
//
//	_ = store.CreateSchema(ctx)
//
//	events, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, newEvent)
package postgresengine
