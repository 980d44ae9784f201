package ledger

import (
	"context"
	"testing"

	"tradex/internal/store"
	storesqlite "tradex/internal/store/sqlite"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, dbName string) store.PositionRepository {
	t.Helper()
	st, err := storesqlite.NewMemoryStore(dbName)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	uow, err := st.Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { uow.Commit() })
	return uow.Positions()
}

func apply(t *testing.T, l *Ledger, repo store.PositionRepository, signedQty int64, price string) {
	t.Helper()
	require.NoError(t, l.ApplyFill(context.Background(), repo, "acct", "BTCUSDT", signedQty, decimal.RequireFromString(price)))
}

func assertPosition(t *testing.T, l *Ledger, repo store.PositionRepository, wantQty int64, wantCost string) {
	t.Helper()
	pos, err := l.Position(context.Background(), repo, "acct", "BTCUSDT")
	require.NoError(t, err)
	require.NotNil(t, pos)
	assert.Equal(t, wantQty, pos.Qty)
	assert.True(t, pos.AvgCost.Equal(decimal.RequireFromString(wantCost)),
		"expected cost %s, got %s", wantCost, pos.AvgCost)
}

func TestLedgerWeightedAverageCost(t *testing.T) {
	l := New()
	repo := newTestRepo(t, "ledger_wac")

	apply(t, l, repo, 10, "10")
	assertPosition(t, l, repo, 10, "10")

	// Adding to a long blends the cost basis.
	apply(t, l, repo, 10, "20")
	assertPosition(t, l, repo, 20, "15")

	// A partial close takes quantity but never moves the basis.
	apply(t, l, repo, -5, "30")
	assertPosition(t, l, repo, 15, "15")
}

func TestLedgerFlipResetsCost(t *testing.T) {
	l := New()
	repo := newTestRepo(t, "ledger_flip")

	apply(t, l, repo, 15, "15")
	apply(t, l, repo, -20, "30")
	assertPosition(t, l, repo, -5, "30")
}

func TestLedgerClosesToFlatDeletesPosition(t *testing.T) {
	l := New()
	repo := newTestRepo(t, "ledger_flat")

	apply(t, l, repo, 10, "10")
	apply(t, l, repo, -10, "12")

	pos, err := l.Position(context.Background(), repo, "acct", "BTCUSDT")
	require.NoError(t, err)
	assert.Nil(t, pos)
}

func TestLedgerZeroQtyIsNoop(t *testing.T) {
	l := New()
	repo := newTestRepo(t, "ledger_zero")

	apply(t, l, repo, 0, "10")
	pos, err := l.Position(context.Background(), repo, "acct", "BTCUSDT")
	require.NoError(t, err)
	assert.Nil(t, pos)
}

func TestLedgerShortSideBlends(t *testing.T) {
	l := New()
	repo := newTestRepo(t, "ledger_short")

	apply(t, l, repo, -10, "100")
	assertPosition(t, l, repo, -10, "100")

	apply(t, l, repo, -10, "110")
	assertPosition(t, l, repo, -20, "105")

	// Covering part of the short leaves the basis alone.
	apply(t, l, repo, 5, "90")
	assertPosition(t, l, repo, -15, "105")
}

func TestLedgerListPositions(t *testing.T) {
	l := New()
	repo := newTestRepo(t, "ledger_list")

	ctx := context.Background()
	require.NoError(t, l.ApplyFill(ctx, repo, "acct", "BTCUSDT", 5, decimal.RequireFromString("10")))
	require.NoError(t, l.ApplyFill(ctx, repo, "acct", "ETHUSDT", -3, decimal.RequireFromString("20")))
	require.NoError(t, l.ApplyFill(ctx, repo, "other", "BTCUSDT", 7, decimal.RequireFromString("30")))

	list, err := l.ListPositions(ctx, repo, "acct")
	require.NoError(t, err)
	require.Len(t, list, 2)
}
