package sweepapi

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/reservefi/sweeper-sdk/core/types"
	"github.com/reservefi/sweeper-sdk/core/util"
)

// ConfigRegistry holds the per-market extraction authority and conversion
// handler assignments plus the one global extraction ratio. All mutations
// are restricted to the single operator; entries are only ever
// overwritten, never deleted, and every overwrite emits the old and new
// values for audit.
type ConfigRegistry struct {
	mu          sync.RWMutex
	operator    common.Address
	markets     types.MarketRegistry
	events      types.EventSink
	authorities map[common.Address]types.ExtractionAuthority
	handlers    map[common.Address]types.ConversionHandler
	ratio       util.Ratio
}

// NewConfigRegistry creates a registry with the default 50% ratio.
func NewConfigRegistry(operator common.Address, markets types.MarketRegistry, events types.EventSink) *ConfigRegistry {
	if events == nil {
		events = NewMemoryEventSink()
	}
	return &ConfigRegistry{
		operator:    operator,
		markets:     markets,
		events:      events,
		authorities: make(map[common.Address]types.ExtractionAuthority),
		handlers:    make(map[common.Address]types.ConversionHandler),
		ratio:       util.DefaultRatio,
	}
}

// SetExtractionAuthorities assigns authorities to markets, pairwise.
// Every market must be listed and every authority must equal its market's
// on-chain administrator; if any pair fails, none are committed.
func (r *ConfigRegistry) SetExtractionAuthorities(ctx context.Context, input types.SetExtractionAuthoritiesInput) error {
	if err := r.authorize(input.Caller); err != nil {
		return err
	}
	if len(input.Markets) != len(input.Authorities) {
		return errors.Wrapf(ErrInvalidInput, "%d markets, %d authorities", len(input.Markets), len(input.Authorities))
	}

	// Validate the whole batch before committing any of it.
	for i, market := range input.Markets {
		addr := market.Address()

		listed, err := r.markets.IsListed(ctx, addr)
		if err != nil {
			return errors.Wrapf(err, "listing check for market %s", addr)
		}
		if !listed {
			return errors.Wrapf(ErrNotListed, "market %s", addr)
		}

		admin, err := market.Administrator(ctx)
		if err != nil {
			return errors.Wrapf(err, "administrator lookup for market %s", addr)
		}
		if input.Authorities[i].Address() != admin {
			return errors.Wrapf(ErrAdminMismatch, "market %s: authority %s, administrator %s",
				addr, input.Authorities[i].Address(), admin)
		}
	}

	r.mu.Lock()
	events := make([]types.Event, 0, len(input.Markets))
	for i, market := range input.Markets {
		addr := market.Address()
		old := common.Address{}
		if prev, ok := r.authorities[addr]; ok {
			old = prev.Address()
		}
		r.authorities[addr] = input.Authorities[i]
		events = append(events, types.AuthorityUpdatedEvent{
			EventID:      uuid.New(),
			Market:       addr,
			OldAuthority: old,
			NewAuthority: input.Authorities[i].Address(),
		})
	}
	r.mu.Unlock()

	for _, ev := range events {
		r.events.Emit(ev)
	}
	return nil
}

// SetConversionHandlers assigns handlers, pairwise. Unlike authority
// assignment there is no cross-check against the market; the asymmetry is
// deliberate and mirrors the upstream behavior.
func (r *ConfigRegistry) SetConversionHandlers(input types.SetConversionHandlersInput) error {
	if err := r.authorize(input.Caller); err != nil {
		return err
	}
	if len(input.Keys) != len(input.Handlers) {
		return errors.Wrapf(ErrInvalidInput, "%d keys, %d handlers", len(input.Keys), len(input.Handlers))
	}

	r.mu.Lock()
	events := make([]types.Event, 0, len(input.Keys))
	for i, key := range input.Keys {
		old := common.Address{}
		if prev, ok := r.handlers[key]; ok {
			old = prev.Address()
		}
		r.handlers[key] = input.Handlers[i]
		events = append(events, types.HandlerUpdatedEvent{
			EventID:    uuid.New(),
			Key:        key,
			OldHandler: old,
			NewHandler: input.Handlers[i].Address(),
		})
	}
	r.mu.Unlock()

	for _, ev := range events {
		r.events.Emit(ev)
	}
	return nil
}

// SetRatio overwrites the global extraction ratio. The stored ratio is
// unchanged on failure.
func (r *ConfigRegistry) SetRatio(input types.SetRatioInput) error {
	if err := r.authorize(input.Caller); err != nil {
		return err
	}
	if !input.Ratio.Valid() {
		return errors.Wrapf(ErrInvalidRatio, "numerator %d, denominator %d", input.Ratio.Numerator(), util.RatioDenominator)
	}

	r.mu.Lock()
	old := r.ratio
	r.ratio = input.Ratio
	r.mu.Unlock()

	r.events.Emit(types.RatioUpdatedEvent{
		EventID:  uuid.New(),
		OldRatio: old,
		NewRatio: input.Ratio,
	})
	return nil
}

// Ratio returns the current global extraction ratio.
func (r *ConfigRegistry) Ratio() util.Ratio {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ratio
}

// AuthorityFor returns the extraction authority assigned to a market.
func (r *ConfigRegistry) AuthorityFor(market common.Address) (types.ExtractionAuthority, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.authorities[market]
	return a, ok
}

// HandlerFor returns the conversion handler registered under a key.
func (r *ConfigRegistry) HandlerFor(key common.Address) (types.ConversionHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[key]
	return h, ok
}

func (r *ConfigRegistry) authorize(caller common.Address) error {
	if caller != r.operator {
		return errors.Wrapf(ErrUnauthorized, "caller %s, operator %s", caller, r.operator)
	}
	return nil
}
