package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/config"
	"github.com/AntonStoeckl/library-lending-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/library-lending-go/eventstore/postgresengine"
	"github.com/AntonStoeckl/library-lending-go/journal"
)

var errUnknownAdapter = errors.New("unknown postgres adapter")

// openJournal returns the configured journal engine and a function which releases its connections.
func (a *app) openJournal(ctx context.Context) (journal.EventStore, func(), error) {
	if a.cfg.Journal.Engine == config.JournalMemory {
		return memoryengine.NewEventStore(memoryengine.WithLogger(a.logger)), func() {}, nil
	}

	return a.openPostgresJournal(ctx)
}

func (a *app) openPostgresJournal(ctx context.Context) (postgresengine.EventStore, func(), error) {
	options := []postgresengine.Option{
		postgresengine.WithTableName(a.cfg.Journal.TableName),
		postgresengine.WithLogger(a.logger),
	}

	if a.collector != nil {
		options = append(options, postgresengine.WithMetrics(a.collector))
	}

	dsn, replicaDSN := a.cfg.Journal.DSN, a.cfg.Journal.ReplicaDSN

	switch a.cfg.Journal.Adapter {
	case config.AdapterPGX:
		primary, err := config.NewPGXPool(ctx, dsn)
		if err != nil {
			return postgresengine.EventStore{}, nil, err
		}

		if replicaDSN == "" {
			store, storeErr := postgresengine.NewEventStoreFromPGXPool(primary, options...)
			return store, primary.Close, storeErr
		}

		replica, err := config.NewPGXPool(ctx, replicaDSN)
		if err != nil {
			primary.Close()
			return postgresengine.EventStore{}, nil, err
		}

		store, err := postgresengine.NewEventStoreFromPGXPoolAndReplica(primary, replica, options...)

		return store, func() { replica.Close(); primary.Close() }, err

	case config.AdapterSQL:
		primary, err := config.NewSQLDB(ctx, dsn)
		if err != nil {
			return postgresengine.EventStore{}, nil, err
		}

		if replicaDSN == "" {
			store, storeErr := postgresengine.NewEventStoreFromSQLDB(primary, options...)
			return store, func() { _ = primary.Close() }, storeErr
		}

		replica, err := config.NewSQLDB(ctx, replicaDSN)
		if err != nil {
			_ = primary.Close()
			return postgresengine.EventStore{}, nil, err
		}

		store, err := postgresengine.NewEventStoreFromSQLDBAndReplica(primary, replica, options...)

		return store, func() { _ = replica.Close(); _ = primary.Close() }, err

	case config.AdapterSQLX:
		primary, err := config.NewSQLX(ctx, dsn)
		if err != nil {
			return postgresengine.EventStore{}, nil, err
		}

		if replicaDSN == "" {
			store, storeErr := postgresengine.NewEventStoreFromSQLX(primary, options...)
			return store, func() { _ = primary.Close() }, storeErr
		}

		replica, err := config.NewSQLX(ctx, replicaDSN)
		if err != nil {
			_ = primary.Close()
			return postgresengine.EventStore{}, nil, err
		}

		store, err := postgresengine.NewEventStoreFromSQLXAndReplica(primary, replica, options...)

		return store, func() { _ = replica.Close(); _ = primary.Close() }, err

	default:
		return postgresengine.EventStore{}, nil, fmt.Errorf("%w: %s", errUnknownAdapter, a.cfg.Journal.Adapter)
	}
}
