package sweepapi

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// CooldownPeriod is the minimum time between extraction attempts on the
// same market. Fixed at deployment; not mutable at runtime.
const CooldownPeriod = 24 * time.Hour

// NativeMarkerSymbol is the market symbol that denotes the native-asset
// market. Such a market has no underlying token contract to query.
const NativeMarkerSymbol = "sETH"

// NativeAssetSentinel is the canonical placeholder identifier for the
// native chain asset.
var NativeAssetSentinel = common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")

// TargetStableAsset is the asset every extraction is ultimately converted
// into. The final burn step of each dispatch invokes the conversion
// handler registered under this identifier.
var TargetStableAsset = common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
