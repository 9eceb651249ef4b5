package sweepapi

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/reservefi/sweeper-sdk/core/logging"
	"github.com/reservefi/sweeper-sdk/core/types"
)

// Sweeper is the dispatch orchestrator. For one or many markets it reads
// live reserves, applies the extraction policy, sequences the authority
// and conversion calls, and records the checkpoint.
//
// A Sweeper has no internal concurrency: invocations are serialized by an
// internal mutex, so each dispatch is one atomic unit of work against the
// ledger. Across invocations the checkpoint timestamp and the cooldown
// window are the only concurrency control.
type Sweeper struct {
	mu       sync.Mutex
	registry *ConfigRegistry
	markets  types.MarketRegistry
	ledger   types.CheckpointLedger
	events   types.EventSink
	cooldown time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// SweeperOptions configures a Sweeper. Registry, Markets and Ledger are
// required; Events, Cooldown, Now and Logger have defaults.
type SweeperOptions struct {
	Registry *ConfigRegistry
	Markets  types.MarketRegistry
	Ledger   types.CheckpointLedger
	Events   types.EventSink
	Cooldown time.Duration
	Now      func() time.Time
	Logger   *zap.Logger
}

// NewSweeper creates a Sweeper.
func NewSweeper(opts SweeperOptions) (*Sweeper, error) {
	if opts.Registry == nil {
		return nil, errors.New("config registry is required")
	}
	if opts.Markets == nil {
		return nil, errors.New("market registry is required")
	}
	if opts.Ledger == nil {
		return nil, errors.New("checkpoint ledger is required")
	}
	if opts.Events == nil {
		opts.Events = NewMemoryEventSink()
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = CooldownPeriod
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.Logger
	}
	return &Sweeper{
		registry: opts.Registry,
		markets:  opts.Markets,
		ledger:   opts.Ledger,
		events:   opts.Events,
		cooldown: opts.Cooldown,
		now:      opts.Now,
		logger:   opts.Logger,
	}, nil
}

// DispatchOne runs one extraction cycle for a single market. When
// isBatched is false the final burn of the target stable asset runs at
// the end, fire-and-forget; batched callers defer it to DispatchMany.
func (s *Sweeper) DispatchOne(ctx context.Context, market types.Market, isBatched bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatchOne(ctx, market, isBatched)
}

// DispatchMany runs extraction cycles for every market in order, then
// performs exactly one final burn of the target stable asset. The first
// per-market failure aborts the batch: remaining markets are not
// processed, and the failing market commits nothing.
func (s *Sweeper) DispatchMany(ctx context.Context, markets []types.Market) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, market := range markets {
		if err := s.dispatchOne(ctx, market, true); err != nil {
			return errors.Wrapf(err, "dispatch for market %s", market.Address())
		}
	}
	return s.finalBurn(ctx, true)
}

func (s *Sweeper) dispatchOne(ctx context.Context, market types.Market, isBatched bool) error {
	addr := market.Address()

	listed, err := s.markets.IsListed(ctx, addr)
	if err != nil {
		return errors.Wrapf(err, "listing check for market %s", addr)
	}
	if !listed {
		return errors.Wrapf(ErrNotListed, "market %s", addr)
	}

	live, err := market.TotalReserves(ctx)
	if err != nil {
		return errors.Wrapf(err, "reserves query for market %s", addr)
	}
	cp, err := s.ledger.Get(addr)
	if err != nil {
		return errors.Wrapf(err, "checkpoint read for market %s", addr)
	}
	now := s.now().Unix()

	decision, err := DecideExtraction(cp, live, s.registry.Ratio())
	if err != nil {
		return errors.Wrapf(err, "extraction policy for market %s", addr)
	}

	var completed *types.DispatchEvent
	if decision.Extract {
		authority, ok := s.registry.AuthorityFor(addr)
		if !ok {
			return errors.Wrapf(ErrAuthorityNotSet, "market %s", addr)
		}
		handler, ok := s.registry.HandlerFor(addr)
		if !ok {
			return errors.Wrapf(ErrHandlerNotSet, "market %s", addr)
		}
		if !CooldownElapsed(cp, now, int64(s.cooldown/time.Second)) {
			return errors.Wrapf(ErrCooldownActive, "market %s: checkpoint %d, now %d", addr, cp.Timestamp, now)
		}

		asset, err := s.underlyingAsset(ctx, market)
		if err != nil {
			return err
		}

		// An authority failure is fatal; nothing past this point commits.
		if err := authority.ExtractReserves(ctx, addr, decision.Amount); err != nil {
			return errors.Wrapf(err, "extraction from market %s", addr)
		}
		if err := handler.Convert(ctx, asset); err != nil {
			return errors.Wrapf(ErrConversionFailed, "market %s, asset %s: %v", addr, asset, err)
		}

		ev := types.NewDispatchEvent(asset, decision.Amount)
		completed = &ev

		s.logger.Info("reserves extracted",
			zap.String("market", addr.Hex()),
			zap.String("asset", asset.Hex()),
			zap.String("amount", decision.Amount.Dec()),
		)
	}

	// The checkpoint advances whether or not extraction ran this cycle.
	if err := s.ledger.Set(addr, types.Checkpoint{Timestamp: now, TotalReserves: live}); err != nil {
		return errors.Wrapf(err, "checkpoint write for market %s", addr)
	}
	if completed != nil {
		s.events.Emit(*completed)
	}

	if !isBatched {
		// Single-call path: fire-and-forget, result deliberately ignored.
		_ = s.finalBurn(ctx, false)
	}
	return nil
}

// underlyingAsset resolves the asset a market's reserves denominate in.
// The native-asset market has no underlying token contract, so its symbol
// maps to the fixed sentinel identifier.
func (s *Sweeper) underlyingAsset(ctx context.Context, market types.Market) (common.Address, error) {
	symbol, err := market.Symbol(ctx)
	if err != nil {
		return common.Address{}, errors.Wrapf(err, "symbol query for market %s", market.Address())
	}
	if symbol == NativeMarkerSymbol {
		return NativeAssetSentinel, nil
	}
	asset, err := market.UnderlyingAsset(ctx)
	if err != nil {
		return common.Address{}, errors.Wrapf(err, "underlying asset query for market %s", market.Address())
	}
	return asset, nil
}

// finalBurn invokes the conversion handler registered for the target
// stable asset. The batched path checks the result; the single path
// ignores it.
func (s *Sweeper) finalBurn(ctx context.Context, checked bool) error {
	handler, ok := s.registry.HandlerFor(TargetStableAsset)
	if !ok {
		if checked {
			return errors.Wrapf(ErrHandlerNotSet, "target stable asset %s", TargetStableAsset)
		}
		s.logger.Debug("no handler for target stable asset, skipping final burn")
		return nil
	}
	if err := handler.Convert(ctx, TargetStableAsset); err != nil {
		if checked {
			return errors.Wrapf(ErrConversionFailed, "target stable asset %s: %v", TargetStableAsset, err)
		}
		s.logger.Debug("final burn failed", zap.Error(err))
	}
	return nil
}
