package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending-go/journal"
	"github.com/AntonStoeckl/library-lending-go/lending"
)

func newReplayCmd(a *app) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Restore the library from the journal and report on it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runReplay(cmd.Context(), asOf)
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Restore the state at the end of this day (YYYY-MM-DD)")

	return cmd
}

func (a *app) runReplay(ctx context.Context, asOf string) error {
	store, closeJournal, err := a.openJournal(ctx)
	if err != nil {
		return err
	}
	defer closeJournal()

	var service *lending.Service

	if asOf == "" {
		service, err = journal.Restore(ctx, store, a.serviceOptions()...)
	} else {
		day, parseErr := time.Parse(time.DateOnly, asOf)
		if parseErr != nil {
			return parseErr
		}

		endOfDay := day.AddDate(0, 0, 1).Add(-time.Microsecond)
		options := append(a.serviceOptions(), lending.WithClock(lending.NewManualClock(endOfDay)))
		service, err = journal.RestoreAsOf(ctx, store, endOfDay, options...)
	}

	if err != nil {
		return err
	}

	section(a.out, "Library State")
	fmt.Fprint(a.out, service.Stats())

	section(a.out, "Overdue Loans")
	for _, overdue := range service.OverdueReport() {
		fmt.Fprintln(a.out, overdue)
	}

	section(a.out, "Top Borrowed Items")
	printTopBorrowed(a.out, service, 3)

	return a.dumpMetrics()
}
