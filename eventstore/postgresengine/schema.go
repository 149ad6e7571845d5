package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AntonStoeckl/library-lending-go/eventstore"
)

// schemaStatements returns the DDL of the events table and its indexes, with safely quoted identifiers.
func (es EventStore) schemaStatements() []sqlQueryString {
	table := pgx.Identifier{es.eventTableName}.Sanitize()
	eventTypeIndex := pgx.Identifier{es.eventTableName + "_event_type_idx"}.Sanitize()
	occurredAtIndex := pgx.Identifier{es.eventTableName + "_occurred_at_idx"}.Sanitize()
	payloadIndex := pgx.Identifier{es.eventTableName + "_payload_idx"}.Sanitize()

	return []sqlQueryString{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s BIGSERIAL PRIMARY KEY,
	%s TEXT NOT NULL,
	%s TIMESTAMPTZ NOT NULL,
	%s JSONB NOT NULL,
	%s JSONB NOT NULL,
	appended_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, table, colSequenceNumber, colEventType, colOccurredAt, colPayload, colMetadata),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (%s)`, eventTypeIndex, table, colEventType),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (%s)`, occurredAtIndex, table, colOccurredAt),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s USING gin (%s jsonb_path_ops)`, payloadIndex, table, colPayload),
	}
}

// CreateSchema creates the events table and its indexes if they do not exist yet.
func (es EventStore) CreateSchema(ctx context.Context) error {
	start := time.Now()

	for _, statement := range es.schemaStatements() {
		if _, err := es.db.Exec(ctx, statement); err != nil {
			es.logError(logMsgCreateSchemaFailed, err, logAttrQuery, statement)
			return errors.Join(eventstore.ErrCreatingSchemaFailed, err)
		}
	}

	duration := time.Since(start)
	es.logQueryWithDuration(es.eventTableName, logActionCreateSchema, duration)
	es.logOperation(logMsgSchemaCreated, logAttrTable, es.eventTableName)

	return nil
}
