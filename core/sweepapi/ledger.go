package sweepapi

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/reservefi/sweeper-sdk/core/types"
)

// MemoryLedger is the default in-process checkpoint ledger. Reads return
// deep copies; writes are last-writer-wins with no validation.
type MemoryLedger struct {
	mu          sync.RWMutex
	checkpoints map[common.Address]types.Checkpoint
}

var _ types.CheckpointLedger = (*MemoryLedger)(nil)

// NewMemoryLedger creates an empty ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		checkpoints: make(map[common.Address]types.Checkpoint),
	}
}

// Get returns the stored checkpoint for a market, or the zero checkpoint
// if the market has never been dispatched.
func (l *MemoryLedger) Get(market common.Address) (types.Checkpoint, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	cp, ok := l.checkpoints[market]
	if !ok {
		return types.ZeroCheckpoint(), nil
	}
	return cp.Clone(), nil
}

// Set overwrites the stored checkpoint for a market.
func (l *MemoryLedger) Set(market common.Address, cp types.Checkpoint) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.checkpoints[market] = cp.Clone()
	return nil
}
