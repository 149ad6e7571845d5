// Package config loads the settings of the library process and creates the database connections
// for the postgres journal.
//
// Settings come from (highest priority first) LIBRARY_* environment variables, an optional
// library.yaml and the defaults below. The connection factories support the three postgres
// drivers the journal can use: pgx.Pool, sql.DB (lib/pq) and sqlx.DB.
package config
