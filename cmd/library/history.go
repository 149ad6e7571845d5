package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending-go/journal"
)

func newHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history MEMBER_ID",
		Short: "List the journaled activity of one member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			memberID, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}

			return a.runHistory(cmd.Context(), memberID)
		},
	}
}

func (a *app) runHistory(ctx context.Context, memberID uuid.UUID) error {
	store, closeJournal, err := a.openJournal(ctx)
	if err != nil {
		return err
	}
	defer closeJournal()

	history, err := journal.MemberHistory(ctx, store, memberID)
	if err != nil {
		return err
	}

	section(a.out, "History of "+memberID.String())
	for _, event := range history {
		fmt.Fprintf(a.out, "%s %s %+v\n", event.HasOccurredAt().Format(time.RFC3339), event.IsEventType(), event)
	}

	return nil
}
