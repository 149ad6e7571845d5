// Package adapters lets the postgres event store run on pgxpool.Pool, sql.DB or sqlx.DB.
//
// Each adapter can optionally hold a second connection to a read replica, used by Query
// when the context carries eventstore.EventualConsistency.
package adapters
