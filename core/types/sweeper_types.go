package types

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ═══════════════════════════════════════════════════════════════
// COLLABORATOR INTERFACES
// ═══════════════════════════════════════════════════════════════

// MarketRegistry answers whether a market is currently listed.
// Only listed markets may be configured or dispatched.
type MarketRegistry interface {
	IsListed(ctx context.Context, market common.Address) (bool, error)
}

// Market is one lending instrument that accrues protocol reserves.
// Implementations typically wrap an on-chain contract binding.
type Market interface {
	// Address returns the market's unique identifier.
	Address() common.Address
	// TotalReserves returns the market's live reserve total in base units.
	TotalReserves(ctx context.Context) (*uint256.Int, error)
	// Symbol returns the market's ticker symbol.
	Symbol(ctx context.Context) (string, error)
	// UnderlyingAsset returns the identifier of the asset the market lends.
	UnderlyingAsset(ctx context.Context) (common.Address, error)
	// Administrator returns the account authorized to extract from the market.
	Administrator(ctx context.Context) (common.Address, error)
}

// ExtractionAuthority physically moves extracted reserves out of a market.
type ExtractionAuthority interface {
	Address() common.Address
	ExtractReserves(ctx context.Context, market common.Address, amount *uint256.Int) error
}

// ConversionHandler converts ("burns") an asset into the target asset.
type ConversionHandler interface {
	Address() common.Address
	Convert(ctx context.Context, asset common.Address) error
}

// ═══════════════════════════════════════════════════════════════
// DATA MODEL
// ═══════════════════════════════════════════════════════════════

// Checkpoint is the last-recorded observation for a market. It gates and
// sizes the next extraction. The zero value means "never dispatched".
type Checkpoint struct {
	Timestamp     int64
	TotalReserves *uint256.Int
}

// ZeroCheckpoint returns the default checkpoint for a market that has
// never been dispatched.
func ZeroCheckpoint() Checkpoint {
	return Checkpoint{Timestamp: 0, TotalReserves: uint256.NewInt(0)}
}

// Clone returns a deep copy so callers cannot alias ledger-owned values.
func (c Checkpoint) Clone() Checkpoint {
	out := Checkpoint{Timestamp: c.Timestamp, TotalReserves: uint256.NewInt(0)}
	if c.TotalReserves != nil {
		out.TotalReserves = new(uint256.Int).Set(c.TotalReserves)
	}
	return out
}

// CheckpointLedger stores per-market checkpoints. Last-writer-wins; the
// dispatch orchestrator is the only writer.
type CheckpointLedger interface {
	// Get returns the stored checkpoint, or ZeroCheckpoint if absent.
	Get(market common.Address) (Checkpoint, error)
	// Set overwrites the stored checkpoint.
	Set(market common.Address, cp Checkpoint) error
}
