package sweepapi

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/reservefi/sweeper-sdk/core/types"
)

func TestMemoryLedger_DefaultsToZeroCheckpoint(t *testing.T) {
	ledger := NewMemoryLedger()

	cp, err := ledger.Get(common.HexToAddress("0x01"))
	require.NoError(t, err)
	require.Equal(t, int64(0), cp.Timestamp)
	require.True(t, cp.TotalReserves.IsZero())
}

func TestMemoryLedger_SetThenGet(t *testing.T) {
	ledger := NewMemoryLedger()
	market := common.HexToAddress("0x02")

	require.NoError(t, ledger.Set(market, types.Checkpoint{
		Timestamp:     1700000000,
		TotalReserves: uint256.NewInt(12345),
	}))

	cp, err := ledger.Get(market)
	require.NoError(t, err)
	require.Equal(t, int64(1700000000), cp.Timestamp)
	require.Equal(t, uint256.NewInt(12345), cp.TotalReserves)
}

func TestMemoryLedger_LastWriterWins(t *testing.T) {
	ledger := NewMemoryLedger()
	market := common.HexToAddress("0x03")

	require.NoError(t, ledger.Set(market, types.Checkpoint{Timestamp: 1, TotalReserves: uint256.NewInt(1)}))
	require.NoError(t, ledger.Set(market, types.Checkpoint{Timestamp: 2, TotalReserves: uint256.NewInt(2)}))

	cp, err := ledger.Get(market)
	require.NoError(t, err)
	require.Equal(t, int64(2), cp.Timestamp)
	require.Equal(t, uint256.NewInt(2), cp.TotalReserves)
}

func TestMemoryLedger_ReturnsCopies(t *testing.T) {
	ledger := NewMemoryLedger()
	market := common.HexToAddress("0x04")

	stored := types.Checkpoint{Timestamp: 10, TotalReserves: uint256.NewInt(100)}
	require.NoError(t, ledger.Set(market, stored))

	// Mutating either the input or a read result must not leak into the ledger.
	stored.TotalReserves.SetUint64(999)
	got, err := ledger.Get(market)
	require.NoError(t, err)
	got.TotalReserves.SetUint64(777)

	again, err := ledger.Get(market)
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(100), again.TotalReserves)
}
