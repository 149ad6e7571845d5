package eventstore

import (
	"cmp"
	"slices"
	"time"
)

type FilterEventTypeString = string
type FilterKeyString = string
type FilterValString = string

/***** Filter *****/

// Filter selects the events of a "dynamic event stream".
//
// The FilterItem(s) are combined with OR, the optional occurred-at window applies to all of them.
// A Filter without items matches every event (inside the window, if one is set).
type Filter struct {
	items         []FilterItem
	occurredFrom  time.Time
	occurredUntil time.Time
}

func (f Filter) Items() []FilterItem {
	return f.items
}

// OccurredFrom is the inclusive lower bound of the window, zero if unbounded.
func (f Filter) OccurredFrom() time.Time {
	return f.occurredFrom
}

// OccurredUntil is the inclusive upper bound of the window, zero if unbounded.
func (f Filter) OccurredUntil() time.Time {
	return f.occurredUntil
}

// WithOccurredFrom returns a copy of the Filter which only matches events that occurred at or after t.
func (f Filter) WithOccurredFrom(t time.Time) Filter {
	f.occurredFrom = t
	return f
}

// WithOccurredUntil returns a copy of the Filter which only matches events that occurred at or before t.
func (f Filter) WithOccurredUntil(t time.Time) Filter {
	f.occurredUntil = t
	return f
}

/***** FilterItem *****/

// FilterItem matches events of ANY of its event types AND its predicates (any or all of them).
type FilterItem struct {
	eventTypes             []FilterEventTypeString
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
}

func (fi FilterItem) EventTypes() []FilterEventTypeString {
	return fi.eventTypes
}

func (fi FilterItem) Predicates() []FilterPredicate {
	return fi.predicates
}

func (fi FilterItem) AllPredicatesMustMatch() bool {
	return fi.allPredicatesMustMatch
}

/***** FilterPredicate *****/

// FilterPredicate matches events whose JSON payload has the top-level key with exactly this string value.
type FilterPredicate struct {
	key FilterKeyString
	val FilterValString
}

// P builds a FilterPredicate.
func P(key FilterKeyString, val FilterValString) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() FilterKeyString {
	return fp.key
}

func (fp FilterPredicate) Val() FilterValString {
	return fp.val
}

/***** FilterBuilder *****/

// FilterBuilder builds a Filter step by step, only allowing the combinations which make sense
// for the lending journal:
//
//   - any event
//   - (eventType OR eventType...)
//   - (predicate OR predicate...) or (predicate AND predicate...)
//   - ((eventType OR eventType...) AND (predicate OR|AND predicate...))
//   - multiple of the above, combined with OR
type FilterBuilder interface {
	// Matching starts a new FilterItem.
	Matching() EmptyFilterItemBuilder

	// MatchingAnyEvent creates a Filter without items.
	MatchingAnyEvent() Filter
}

type EmptyFilterItemBuilder interface {
	// AnyEventTypeOf adds event types to the current FilterItem, ANY of them must match.
	// Empty and duplicate event types are dropped, the rest is sorted.
	AnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) FilterItemBuilderLackingPredicates

	// AnyPredicateOf adds predicates to the current FilterItem, ANY of them must match.
	// Partial and duplicate predicates are dropped, the rest is sorted.
	AnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes

	// AllPredicatesOf adds predicates to the current FilterItem, ALL of them must match.
	AllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes
}

type FilterItemBuilderLackingPredicates interface {
	// AndAnyPredicateOf adds predicates to the current FilterItem, ANY of them must match.
	AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder

	// AndAllPredicatesOf adds predicates to the current FilterItem, ALL of them must match.
	AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder

	CompletedFilterItemBuilder
}

type FilterItemBuilderLackingEventTypes interface {
	// AndAnyEventTypeOf adds event types to the current FilterItem, ANY of them must match.
	AndAnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) CompletedFilterItemBuilder

	CompletedFilterItemBuilder
}

type CompletedFilterItemBuilder interface {
	// OrMatching closes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// Finalize closes the current FilterItem and returns the Filter.
	Finalize() Filter
}

// filterBuilder implements all builder interfaces. It is passed by value, so a partially built
// filter can be branched without aliasing.
type filterBuilder struct {
	filter  Filter
	current FilterItem
}

// BuildEventFilter starts a new Filter.
func BuildEventFilter() FilterBuilder {
	return filterBuilder{}
}

func (fb filterBuilder) Matching() EmptyFilterItemBuilder {
	fb.current = FilterItem{}

	return fb
}

func (fb filterBuilder) MatchingAnyEvent() Filter {
	return fb.filter
}

func (fb filterBuilder) AnyEventTypeOf(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) FilterItemBuilderLackingPredicates {

	fb.current.eventTypes = sanitize(
		append(slices.Clone(fb.current.eventTypes), append([]FilterEventTypeString{eventType}, eventTypes...)...),
		func(e FilterEventTypeString) bool { return e == "" },
		cmp.Compare[FilterEventTypeString],
	)

	return fb
}

func (fb filterBuilder) AndAnyEventTypeOf(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) CompletedFilterItemBuilder {

	return fb.AnyEventTypeOf(eventType, eventTypes...)
}

func (fb filterBuilder) AnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes {
	fb.current.predicates = sanitizePredicates(fb.current.predicates, predicate, predicates...)

	return fb
}

func (fb filterBuilder) AllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes {
	fb.current.allPredicatesMustMatch = true
	fb.current.predicates = sanitizePredicates(fb.current.predicates, predicate, predicates...)

	return fb
}

func (fb filterBuilder) AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder {
	return fb.AnyPredicateOf(predicate, predicates...)
}

func (fb filterBuilder) AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder {
	return fb.AllPredicatesOf(predicate, predicates...)
}

func (fb filterBuilder) OrMatching() EmptyFilterItemBuilder {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.current)
	fb.current = FilterItem{}

	return fb
}

func (fb filterBuilder) Finalize() Filter {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.current)

	return fb.filter
}

func sanitizePredicates(existing []FilterPredicate, predicate FilterPredicate, predicates ...FilterPredicate) []FilterPredicate {
	return sanitize(
		append(slices.Clone(existing), append([]FilterPredicate{predicate}, predicates...)...),
		func(p FilterPredicate) bool { return p.key == "" || p.val == "" },
		func(a, b FilterPredicate) int {
			return cmp.Or(cmp.Compare(a.key, b.key), cmp.Compare(a.val, b.val))
		},
	)
}

// sanitize drops the unwanted elements, sorts and deduplicates the rest.
func sanitize[T comparable](all []T, unwanted func(T) bool, compare func(a, b T) int) []T {
	all = slices.DeleteFunc(all, unwanted)
	slices.SortFunc(all, compare)

	return slices.Clip(slices.Compact(all))
}
