package sweepapi

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/reservefi/sweeper-sdk/core/types"
	"github.com/reservefi/sweeper-sdk/core/util"
)

// ExtractionDecision is the outcome of the extraction policy for one
// market: either skip this cycle, or extract Amount.
type ExtractionDecision struct {
	Extract bool
	Amount  *uint256.Int
}

// DecideExtraction compares a market's live reserve total against its
// stored checkpoint and decides whether to extract.
//
// The upstream comparison is preserved verbatim: the extraction branch is
// taken when the live total is less than or equal to the checkpoint, not
// when reserves have grown. A strict decrease underflows the checked
// subtraction and fails with ErrArithmeticUnderflow; equality extracts an
// amount of exactly zero, and the caller still performs its side effects.
// Reserve growth skips extraction entirely.
//
// The candidate amount is (live − checkpoint) × ratio / denominator with
// checked unsigned arithmetic throughout.
func DecideExtraction(cp types.Checkpoint, liveReserves *uint256.Int, ratio util.Ratio) (ExtractionDecision, error) {
	stored := cp.TotalReserves
	if stored == nil {
		stored = uint256.NewInt(0)
	}

	if liveReserves.Gt(stored) {
		return ExtractionDecision{Extract: false}, nil
	}

	delta, underflow := new(uint256.Int).SubOverflow(liveReserves, stored)
	if underflow {
		return ExtractionDecision{}, errors.Wrapf(ErrArithmeticUnderflow,
			"live reserves %s below checkpoint %s", liveReserves.Dec(), stored.Dec())
	}

	amount, overflow := new(uint256.Int).MulDivOverflow(
		delta,
		uint256.NewInt(ratio.Numerator()),
		uint256.NewInt(util.RatioDenominator),
	)
	if overflow {
		return ExtractionDecision{}, errors.Errorf("extraction amount overflows: delta %s", delta.Dec())
	}

	return ExtractionDecision{Extract: true, Amount: amount}, nil
}

// CooldownElapsed reports whether a market's cooldown window has passed:
// checkpoint timestamp plus the cooldown must not exceed now.
func CooldownElapsed(cp types.Checkpoint, now int64, cooldownSeconds int64) bool {
	return cp.Timestamp+cooldownSeconds <= now
}
