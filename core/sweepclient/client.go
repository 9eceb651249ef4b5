package sweepclient

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/reservefi/sweeper-sdk/core/logging"
	"github.com/reservefi/sweeper-sdk/core/sweepapi"
	"github.com/reservefi/sweeper-sdk/core/types"
	"github.com/reservefi/sweeper-sdk/core/util"
)

// Client is the operator's handle on the reserve sweeper: it owns the
// configuration registry, the checkpoint ledger and the dispatch
// orchestrator, and signs every configuration call with the operator
// identity it was constructed with.
type Client struct {
	Operator common.Address       `validate:"required"`
	Markets  types.MarketRegistry `validate:"required"`

	registry *sweepapi.ConfigRegistry
	sweeper  *sweepapi.Sweeper
	ledger   types.CheckpointLedger
	events   types.EventSink
	cooldown time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

type Option func(*Client)

// NewClient wires a sweeper for the given market registry. The operator
// identity is required; ledger, event sink, cooldown, clock and logger
// have defaults.
func NewClient(markets types.MarketRegistry, options ...Option) (*Client, error) {
	c := &Client{Markets: markets}
	for _, option := range options {
		option(c)
	}

	if c.ledger == nil {
		c.ledger = sweepapi.NewMemoryLedger()
	}
	if c.logger == nil {
		c.logger = logging.Logger
	}
	if c.events == nil {
		c.events = sweepapi.NewZapEventSink(c.logger)
	}
	if c.cooldown <= 0 {
		c.cooldown = sweepapi.CooldownPeriod
	}
	if c.now == nil {
		c.now = time.Now
	}

	if err := c.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}

	c.registry = sweepapi.NewConfigRegistry(c.Operator, c.Markets, c.events)
	sweeper, err := sweepapi.NewSweeper(sweepapi.SweeperOptions{
		Registry: c.registry,
		Markets:  c.Markets,
		Ledger:   c.ledger,
		Events:   c.events,
		Cooldown: c.cooldown,
		Now:      c.now,
		Logger:   c.logger,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	c.sweeper = sweeper

	return c, nil
}

func (c *Client) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func WithOperator(operator common.Address) Option {
	return func(c *Client) {
		c.Operator = operator
	}
}

func WithLedger(ledger types.CheckpointLedger) Option {
	return func(c *Client) {
		c.ledger = ledger
	}
}

func WithEventSink(sink types.EventSink) Option {
	return func(c *Client) {
		c.events = sink
	}
}

// WithCooldown overrides the cooldown window at construction time.
func WithCooldown(cooldown time.Duration) Option {
	return func(c *Client) {
		c.cooldown = cooldown
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// ═══════════════════════════════════════════════════════════════
// OPERATOR OPERATIONS
// ═══════════════════════════════════════════════════════════════

// SetExtractionAuthorities assigns extraction authorities to markets on
// behalf of the client's operator.
func (c *Client) SetExtractionAuthorities(ctx context.Context, markets []types.Market, authorities []types.ExtractionAuthority) error {
	return c.registry.SetExtractionAuthorities(ctx, types.SetExtractionAuthoritiesInput{
		Caller:      c.Operator,
		Markets:     markets,
		Authorities: authorities,
	})
}

// SetConversionHandlers assigns conversion handlers on behalf of the
// client's operator.
func (c *Client) SetConversionHandlers(keys []common.Address, handlers []types.ConversionHandler) error {
	return c.registry.SetConversionHandlers(types.SetConversionHandlersInput{
		Caller:   c.Operator,
		Keys:     keys,
		Handlers: handlers,
	})
}

// SetRatio overwrites the global extraction ratio on behalf of the
// client's operator.
func (c *Client) SetRatio(ratio util.Ratio) error {
	return c.registry.SetRatio(types.SetRatioInput{
		Caller: c.Operator,
		Ratio:  ratio,
	})
}

// Ratio returns the current global extraction ratio.
func (c *Client) Ratio() util.Ratio {
	return c.registry.Ratio()
}

// Checkpoint returns the stored checkpoint for a market.
func (c *Client) Checkpoint(market common.Address) (types.Checkpoint, error) {
	return c.ledger.Get(market)
}

// Registry exposes the configuration registry for read access.
func (c *Client) Registry() *sweepapi.ConfigRegistry {
	return c.registry
}

// ═══════════════════════════════════════════════════════════════
// DISPATCH
// ═══════════════════════════════════════════════════════════════

// DispatchOne runs one extraction cycle for a single market.
func (c *Client) DispatchOne(ctx context.Context, market types.Market, isBatched bool) error {
	return c.sweeper.DispatchOne(ctx, market, isBatched)
}

// DispatchMany runs extraction cycles for every market, then one final
// burn of the target stable asset.
func (c *Client) DispatchMany(ctx context.Context, markets []types.Market) error {
	return c.sweeper.DispatchMany(ctx, markets)
}
