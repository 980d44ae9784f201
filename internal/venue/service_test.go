package venue

import (
	"context"
	"sync"
	"testing"
	"time"

	"tradex/internal/cash"
	"tradex/internal/engine"
	"tradex/internal/ledger"
	"tradex/internal/market"
	"tradex/internal/risk"
	storesqlite "tradex/internal/store/sqlite"
	"tradex/internal/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	quotes map[string]types.Quote
}

func (f *fakeSource) GetQuote(_ context.Context, symbol string) (types.Quote, error) {
	q, ok := f.quotes[symbol]
	if !ok {
		return types.Quote{}, types.ErrQuoteNotFound
	}
	return q, nil
}

func (f *fakeSource) Close() error { return nil }

var _ market.Source = (*fakeSource)(nil)

type fakeCash struct {
	mu     sync.Mutex
	trades int
}

func (f *fakeCash) ApplyTrade(context.Context, string, types.Side, int64, decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trades++
	return nil
}

func (f *fakeCash) Balance(context.Context, string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

var _ cash.Ledger = (*fakeCash)(nil)

func newTestService(t *testing.T, dbName string, limits risk.Limits) (*Service, *fakeCash) {
	t.Helper()
	st, err := storesqlite.NewMemoryStore(dbName)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	price := decimal.RequireFromString("150")
	src := &fakeSource{quotes: map[string]types.Quote{
		"BTCUSDT": {
			Symbol:    "BTCUSDT",
			Open:      price,
			High:      price,
			Low:       price,
			Close:     price,
			LastPrice: price,
			Volume:    decimal.NewFromInt(100000),
			Timestamp: time.Now(),
		},
	}}
	fc := &fakeCash{}
	svc := NewService(st, engine.New(ledger.New()), ledger.New(), src, risk.NewValidator(limits), fc, nil)
	return svc, fc
}

func limitReq(account string, side types.Side, qty int64, price string) types.OrderRequest {
	return types.OrderRequest{
		AccountID:  account,
		Symbol:     "BTCUSDT",
		Side:       side,
		Type:       types.OrderTypeLimit,
		Qty:        qty,
		LimitPrice: decimal.NewNullDecimal(decimal.RequireFromString(price)),
	}
}

func TestSubmitRestingAndLookup(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "svc_resting", risk.Limits{})

	order, err := svc.Submit(ctx, limitReq("maker", types.SideSell, 40, "150"))
	require.NoError(t, err)
	assert.Equal(t, types.StatusWorking, order.Status)
	assert.Equal(t, int64(0), order.FilledQty)

	got, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, types.StatusWorking, got.Status)

	fills, err := svc.GetFills(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, fills)
}

func TestSubmitMatchesAndSettles(t *testing.T) {
	ctx := context.Background()
	svc, fc := newTestService(t, "svc_match", risk.Limits{})

	maker, err := svc.Submit(ctx, limitReq("maker", types.SideSell, 40, "150"))
	require.NoError(t, err)

	taker, err := svc.Submit(ctx, limitReq("taker", types.SideBuy, 40, "152"))
	require.NoError(t, err)
	assert.Equal(t, types.StatusFilled, taker.Status)
	require.True(t, taker.AvgFillPrice.Valid)
	// Price improvement: execution happens at the resting price.
	assert.True(t, taker.AvgFillPrice.Decimal.Equal(decimal.RequireFromString("150")))

	makerAfter, err := svc.GetOrder(ctx, maker.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusFilled, makerAfter.Status)

	positions, err := svc.Positions(ctx, "taker")
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, int64(40), positions[0].Qty)

	// One execution notifies cash for both sides.
	fc.mu.Lock()
	defer fc.mu.Unlock()
	assert.Equal(t, 2, fc.trades)
}

func TestSubmitBootstrapOnlyOnce(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "svc_bootstrap", risk.Limits{})

	req := types.OrderRequest{
		AccountID: "acct",
		Symbol:    "BTCUSDT",
		Side:      types.SideBuy,
		Type:      types.OrderTypeMarket,
		Qty:       10,
	}

	first, err := svc.Submit(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, types.StatusFilled, first.Status)
	require.True(t, first.AvgFillPrice.Valid)
	assert.True(t, first.AvgFillPrice.Decimal.Equal(decimal.RequireFromString("150")))

	second, err := svc.Submit(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, types.StatusWorking, second.Status)
	assert.Equal(t, int64(0), second.FilledQty)
}

func TestSubmitZeroQtyCancelsImmediately(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "svc_zero_qty", risk.Limits{})

	order, err := svc.Submit(ctx, limitReq("acct", types.SideBuy, 0, "150"))
	require.NoError(t, err)
	assert.Equal(t, types.StatusCancelled, order.Status)

	fills, err := svc.GetFills(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, fills)
}

func TestSubmitValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "svc_validation", risk.Limits{})

	t.Run("unknown symbol", func(t *testing.T) {
		req := limitReq("acct", types.SideBuy, 1, "150")
		req.Symbol = "NOPE"
		_, err := svc.Submit(ctx, req)
		assert.ErrorIs(t, err, types.ErrQuoteNotFound)
	})

	t.Run("limit without price", func(t *testing.T) {
		req := limitReq("acct", types.SideBuy, 1, "150")
		req.LimitPrice = decimal.NullDecimal{}
		_, err := svc.Submit(ctx, req)
		assert.True(t, types.IsValidation(err))
	})

	t.Run("negative qty", func(t *testing.T) {
		req := limitReq("acct", types.SideBuy, -5, "150")
		_, err := svc.Submit(ctx, req)
		assert.True(t, types.IsValidation(err))
	})

	t.Run("missing account", func(t *testing.T) {
		req := limitReq("  ", types.SideBuy, 1, "150")
		_, err := svc.Submit(ctx, req)
		assert.True(t, types.IsValidation(err))
	})

	t.Run("bad side", func(t *testing.T) {
		req := limitReq("acct", "HOLD", 1, "150")
		_, err := svc.Submit(ctx, req)
		assert.True(t, types.IsValidation(err))
	})
}

func TestSubmitRiskRejection(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "svc_risk", risk.Limits{MaxOrderQty: 5})

	_, err := svc.Submit(ctx, limitReq("acct", types.SideBuy, 10, "150"))
	require.Error(t, err)
	assert.True(t, types.IsRiskViolation(err))
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "svc_cancel", risk.Limits{})

	t.Run("idempotent on working order", func(t *testing.T) {
		order, err := svc.Submit(ctx, limitReq("acct", types.SideSell, 10, "150"))
		require.NoError(t, err)

		first, err := svc.Cancel(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, types.StatusCancelled, first.Status)

		second, err := svc.Cancel(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, types.StatusCancelled, second.Status)
	})

	t.Run("filled order is untouched", func(t *testing.T) {
		maker, err := svc.Submit(ctx, limitReq("maker2", types.SideSell, 10, "150"))
		require.NoError(t, err)
		_, err = svc.Submit(ctx, limitReq("taker2", types.SideBuy, 10, "150"))
		require.NoError(t, err)

		got, err := svc.Cancel(ctx, maker.ID)
		require.NoError(t, err)
		assert.Equal(t, types.StatusFilled, got.Status)

		fills, err := svc.GetFills(ctx, maker.ID)
		require.NoError(t, err)
		assert.Len(t, fills, 1)
	})

	t.Run("partially filled keeps its fills", func(t *testing.T) {
		maker, err := svc.Submit(ctx, limitReq("maker3", types.SideSell, 10, "150"))
		require.NoError(t, err)
		_, err = svc.Submit(ctx, limitReq("taker3", types.SideBuy, 4, "150"))
		require.NoError(t, err)

		got, err := svc.Cancel(ctx, maker.ID)
		require.NoError(t, err)
		assert.Equal(t, types.StatusCancelled, got.Status)
		assert.Equal(t, int64(4), got.FilledQty)

		fills, err := svc.GetFills(ctx, maker.ID)
		require.NoError(t, err)
		assert.Len(t, fills, 1)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := svc.Cancel(ctx, "no-such-order")
		assert.ErrorIs(t, err, types.ErrOrderNotFound)
	})
}

// Concurrent aggressors on one symbol must never consume more than the
// resting order offers.
func TestSubmitConcurrentNoOverconsumption(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "svc_concurrent", risk.Limits{})

	_, err := svc.Submit(ctx, limitReq("maker", types.SideSell, 100, "150"))
	require.NoError(t, err)

	const takers = 20
	ids := make([]string, takers)
	var wg sync.WaitGroup
	for i := 0; i < takers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			order, err := svc.Submit(ctx, limitReq("taker", types.SideBuy, 10, "150"))
			if err == nil {
				ids[i] = order.ID
			}
		}(i)
	}
	wg.Wait()

	var total int64
	for _, id := range ids {
		require.NotEmpty(t, id)
		order, err := svc.GetOrder(ctx, id)
		require.NoError(t, err)
		total += order.FilledQty
	}
	assert.Equal(t, int64(100), total)
}
