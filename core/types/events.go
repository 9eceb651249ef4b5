package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/reservefi/sweeper-sdk/core/util"
)

// EventKind identifies an audit event type.
type EventKind string

const (
	EventKindDispatch         EventKind = "dispatch_completed"
	EventKindAuthorityUpdated EventKind = "authority_updated"
	EventKindHandlerUpdated   EventKind = "handler_updated"
	EventKindRatioUpdated     EventKind = "ratio_updated"
)

// Event is one audit-log entry. Every configuration change and every
// completed extraction produces one.
type Event interface {
	ID() uuid.UUID
	Kind() EventKind
}

// EventSink receives audit events. Sinks must not block dispatch; a sink
// that persists events reports its own failures through logging.
type EventSink interface {
	Emit(event Event)
}

// DispatchEvent records one completed extraction.
//
// AmountProduced is always zero: ConversionHandler.Convert does not report
// the quantity it produced, so only a placeholder can be published.
type DispatchEvent struct {
	EventID         uuid.UUID      `json:"event_id"`
	Asset           common.Address `json:"asset"`
	AmountExtracted *uint256.Int   `json:"amount_extracted"`
	AmountProduced  *uint256.Int   `json:"amount_produced"`
}

func (e DispatchEvent) ID() uuid.UUID   { return e.EventID }
func (e DispatchEvent) Kind() EventKind { return EventKindDispatch }

// NewDispatchEvent builds a DispatchEvent with a fresh ID and the
// placeholder produced amount.
func NewDispatchEvent(asset common.Address, amountExtracted *uint256.Int) DispatchEvent {
	return DispatchEvent{
		EventID:         uuid.New(),
		Asset:           asset,
		AmountExtracted: new(uint256.Int).Set(amountExtracted),
		AmountProduced:  uint256.NewInt(0),
	}
}

// AuthorityUpdatedEvent records an extraction-authority reassignment.
// OldAuthority is the zero address on first assignment.
type AuthorityUpdatedEvent struct {
	EventID      uuid.UUID      `json:"event_id"`
	Market       common.Address `json:"market"`
	OldAuthority common.Address `json:"old_authority"`
	NewAuthority common.Address `json:"new_authority"`
}

func (e AuthorityUpdatedEvent) ID() uuid.UUID   { return e.EventID }
func (e AuthorityUpdatedEvent) Kind() EventKind { return EventKindAuthorityUpdated }

// HandlerUpdatedEvent records a conversion-handler reassignment. Key is
// the identifier the handler is registered under (a market address, or
// the target stable asset for the final burn handler).
type HandlerUpdatedEvent struct {
	EventID    uuid.UUID      `json:"event_id"`
	Key        common.Address `json:"key"`
	OldHandler common.Address `json:"old_handler"`
	NewHandler common.Address `json:"new_handler"`
}

func (e HandlerUpdatedEvent) ID() uuid.UUID   { return e.EventID }
func (e HandlerUpdatedEvent) Kind() EventKind { return EventKindHandlerUpdated }

// RatioUpdatedEvent records a global extraction-ratio change.
type RatioUpdatedEvent struct {
	EventID  uuid.UUID  `json:"event_id"`
	OldRatio util.Ratio `json:"old_ratio"`
	NewRatio util.Ratio `json:"new_ratio"`
}

func (e RatioUpdatedEvent) ID() uuid.UUID   { return e.EventID }
func (e RatioUpdatedEvent) Kind() EventKind { return EventKindRatioUpdated }
