// Package lending contains the in-memory lending engine of a public library:
// the Catalog of items, the MemberRegistry, the LoanLedger and the Service
// which orchestrates them into checkout and return transactions.
//
// The Service is the single source of truth for the business rules:
//   - an Item is either Available or OnLoan, never both
//   - at most one active Loan references an Item
//   - a Loan is due LoanPeriodDays after its loan date
//   - an Item's borrow counter is incremented once per successful checkout and never decremented
//
// Expected business conditions (unknown member, unknown item, item already lent, no matching loan)
// are reported as Result values, never as panics. Infrastructure such as persistence, HTTP or
// metrics export lives in adapters which call into this package.
//
// Time and identifiers are injected (Clock, IDGenerator) so that every date-sensitive
// decision is deterministic under test.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package lending
