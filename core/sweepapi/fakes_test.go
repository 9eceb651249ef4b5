package sweepapi

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/reservefi/sweeper-sdk/core/types"
)

// Hand-rolled collaborator fakes shared by the package tests.

type fakeMarketRegistry struct {
	listed map[common.Address]bool
	err    error
}

func (r *fakeMarketRegistry) IsListed(_ context.Context, market common.Address) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.listed[market], nil
}

type fakeMarket struct {
	addr        common.Address
	symbol      string
	underlying  common.Address
	admin       common.Address
	reserves    *uint256.Int
	reservesErr error

	reserveQueries int
}

func (m *fakeMarket) Address() common.Address { return m.addr }

func (m *fakeMarket) TotalReserves(context.Context) (*uint256.Int, error) {
	m.reserveQueries++
	if m.reservesErr != nil {
		return nil, m.reservesErr
	}
	return new(uint256.Int).Set(m.reserves), nil
}

func (m *fakeMarket) Symbol(context.Context) (string, error) { return m.symbol, nil }

func (m *fakeMarket) UnderlyingAsset(context.Context) (common.Address, error) {
	return m.underlying, nil
}

func (m *fakeMarket) Administrator(context.Context) (common.Address, error) {
	return m.admin, nil
}

type extractCall struct {
	market common.Address
	amount *uint256.Int
}

type fakeAuthority struct {
	addr  common.Address
	err   error
	calls []extractCall
}

func (a *fakeAuthority) Address() common.Address { return a.addr }

func (a *fakeAuthority) ExtractReserves(_ context.Context, market common.Address, amount *uint256.Int) error {
	if a.err != nil {
		return a.err
	}
	a.calls = append(a.calls, extractCall{market: market, amount: new(uint256.Int).Set(amount)})
	return nil
}

type fakeHandler struct {
	addr      common.Address
	err       error
	converted []common.Address
}

func (h *fakeHandler) Address() common.Address { return h.addr }

func (h *fakeHandler) Convert(_ context.Context, asset common.Address) error {
	if h.err != nil {
		return h.err
	}
	h.converted = append(h.converted, asset)
	return nil
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(unix int64) *fakeClock {
	return &fakeClock{t: time.Unix(unix, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

var _ types.Market = (*fakeMarket)(nil)
var _ types.MarketRegistry = (*fakeMarketRegistry)(nil)
var _ types.ExtractionAuthority = (*fakeAuthority)(nil)
var _ types.ConversionHandler = (*fakeHandler)(nil)
