package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending-go/config"
)

var errNothingToMigrate = errors.New("the memory journal has no schema")

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the events table of the postgres journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMigrate(cmd.Context())
		},
	}
}

func (a *app) runMigrate(ctx context.Context) error {
	if a.cfg.Journal.Engine != config.JournalPostgres {
		return errNothingToMigrate
	}

	store, closeJournal, err := a.openPostgresJournal(ctx)
	if err != nil {
		return err
	}
	defer closeJournal()

	if err = store.CreateSchema(ctx); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "journal table %q is ready\n", a.cfg.Journal.TableName)

	return nil
}
