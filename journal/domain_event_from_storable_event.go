package journal

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lending-go/eventstore"
	"github.com/AntonStoeckl/library-lending-go/lending"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (lending.DomainEvents, error) {
	domainEvents := make(lending.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (lending.DomainEvent, error) {
	switch storableEvent.EventType {
	case lending.ItemAddedToCatalogEventType:
		return unmarshalPayload[lending.ItemAddedToCatalog](storableEvent.PayloadJSON)

	case lending.MemberRegisteredEventType:
		return unmarshalPayload[lending.MemberRegistered](storableEvent.PayloadJSON)

	case lending.ItemLentToMemberEventType:
		return unmarshalPayload[lending.ItemLentToMember](storableEvent.PayloadJSON)

	case lending.ItemReturnedByMemberEventType:
		return unmarshalPayload[lending.ItemReturnedByMember](storableEvent.PayloadJSON)

	case lending.LoanDateCorrectedEventType:
		return unmarshalPayload[lending.LoanDateCorrected](storableEvent.PayloadJSON)

	case lending.CheckoutFailedEventType:
		return unmarshalPayload[lending.CheckoutFailed](storableEvent.PayloadJSON)

	case lending.ReturnFailedEventType:
		return unmarshalPayload[lending.ReturnFailed](storableEvent.PayloadJSON)

	default:
		return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
	}
}

func unmarshalPayload[E lending.DomainEvent](payloadJSON []byte) (lending.DomainEvent, error) {
	var event E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
