package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending-go/catalogfile"
	"github.com/AntonStoeckl/library-lending-go/journal"
	"github.com/AntonStoeckl/library-lending-go/lending"
)

const unknownItem = "000-0000000000"

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the lending walkthrough and journal it",
		Long: `Loads the catalog (from catalog_file or the built-in items), registers two members,
checks items out, backdates a loan to make it overdue, returns it and reports the most borrowed items.
All decisions are written to the configured journal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDemo(cmd.Context())
		},
	}
}

func defaultCatalog() []lending.Item {
	return []lending.Item{
		lending.BuildItem("978-0134685991", "Effective Java", "Joshua Bloch", 2018),
		lending.BuildItem("978-0201633610", "Design Patterns", "Erich Gamma", 1994),
		lending.BuildItem("978-0132350884", "Clean Code", "Robert C. Martin", 2008),
		lending.BuildItem("978-1491950357", "Designing Data-Intensive Applications", "Martin Kleppmann", 2017),
		lending.BuildItem("978-0262033848", "Introduction to Algorithms", "Cormen, Leiserson, Rivest, Stein", 2009),
	}
}

func (a *app) runDemo(ctx context.Context) error {
	store, closeJournal, err := a.openJournal(ctx)
	if err != nil {
		return err
	}
	defer closeJournal()

	service, recorder, err := journal.Open(ctx, store, []journal.RecorderOption{journal.WithRecorderLogger(a.logger)}, a.serviceOptions()...)
	if err != nil {
		return err
	}

	items := defaultCatalog()
	if a.cfg.CatalogFile != "" {
		if items, err = catalogfile.Load(a.cfg.CatalogFile); err != nil {
			return err
		}
	}

	if _, seedErr := catalogfile.Seed(service, items); seedErr != nil {
		a.logger.Warn("catalog partially seeded", "error", seedErr)
	}

	alice := service.RegisterMember("Alice")
	bob := service.RegisterMember("Bob")
	first, second := items[0].Identifier, items[min(1, len(items)-1)].Identifier

	section(a.out, "Initial Library State")
	fmt.Fprint(a.out, service.Stats())

	report(a.out, alice, service.Checkout(alice.ID, first))
	report(a.out, bob, service.Checkout(bob.ID, second))

	section(a.out, "After Two Checkouts")
	fmt.Fprint(a.out, service.Stats())

	report(a.out, alice, service.CorrectLoanDate(alice.ID, first, service.Today().AddDate(0, 0, -40)))

	section(a.out, "Overdue Loans")
	for _, overdue := range service.OverdueReport() {
		fmt.Fprintln(a.out, overdue)
	}

	report(a.out, alice, service.ReturnItem(alice.ID, first))

	section(a.out, "After Return")
	for _, item := range service.SearchByTitle("Design") {
		fmt.Fprintln(a.out, item)
	}

	report(a.out, alice, service.Checkout(alice.ID, unknownItem))

	section(a.out, "Top Borrowed Items")
	printTopBorrowed(a.out, service, 3)

	if err = recorder.Flush(ctx); err != nil {
		return err
	}

	return a.dumpMetrics()
}

func section(out io.Writer, title string) {
	fmt.Fprintf(out, "\n== %s ==\n", title)
}

func report(out io.Writer, member lending.Member, result lending.Result) {
	if !result.Succeeded() {
		fmt.Fprintf(out, "%s: %s\n", member.FullName, result.Reason)
		return
	}

	loan := result.Loan
	fmt.Fprintf(out, "%s: %s (loaned %s, due %s)\n",
		member.FullName, result.Item.Title,
		loan.LoanDate().Format("2006-01-02"), loan.DueDate().Format("2006-01-02"))
}

func printTopBorrowed(out io.Writer, service *lending.Service, n int) {
	for _, item := range service.TopBorrowed(n) {
		fmt.Fprintf(out, "%s - borrowed %d times\n", item.Title, item.BorrowCount)
	}
}
