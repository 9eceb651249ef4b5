package types

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/reservefi/sweeper-sdk/core/util"
)

// SetExtractionAuthoritiesInput assigns extraction authorities to markets,
// pairwise. Each market must be listed and each authority must match the
// market's on-chain administrator.
type SetExtractionAuthoritiesInput struct {
	Caller      common.Address
	Markets     []Market
	Authorities []ExtractionAuthority
}

// SetConversionHandlersInput assigns conversion handlers, pairwise. Keys
// are market addresses, or the target stable asset address for the final
// burn handler. Assignments are not cross-checked against the market.
type SetConversionHandlersInput struct {
	Caller   common.Address
	Keys     []common.Address
	Handlers []ConversionHandler
}

// SetRatioInput overwrites the global extraction ratio.
type SetRatioInput struct {
	Caller common.Address
	Ratio  util.Ratio
}
