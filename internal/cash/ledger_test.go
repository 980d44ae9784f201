package cash

import (
	"context"
	"testing"

	storesqlite "tradex/internal/store/sqlite"
	"tradex/internal/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T, dbName string) Ledger {
	t.Helper()
	st, err := storesqlite.NewMemoryStore(dbName)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewLedger(st)
}

func TestCashLedgerSignedNotional(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, "cash_signed")

	require.NoError(t, l.ApplyTrade(ctx, "acct", types.SideBuy, 10, decimal.RequireFromString("150")))
	balance, err := l.Balance(ctx, "acct")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("-1500")), "got %s", balance)

	require.NoError(t, l.ApplyTrade(ctx, "acct", types.SideSell, 4, decimal.RequireFromString("160")))
	balance, err = l.Balance(ctx, "acct")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("-860")), "got %s", balance)
}

func TestCashLedgerUnknownAccountIsZero(t *testing.T) {
	l := newTestLedger(t, "cash_unknown")
	balance, err := l.Balance(context.Background(), "nobody")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestCashLedgerAccountsAreIsolated(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, "cash_isolated")

	require.NoError(t, l.ApplyTrade(ctx, "a", types.SideSell, 1, decimal.RequireFromString("100")))
	require.NoError(t, l.ApplyTrade(ctx, "b", types.SideBuy, 1, decimal.RequireFromString("100")))

	balA, err := l.Balance(ctx, "a")
	require.NoError(t, err)
	assert.True(t, balA.Equal(decimal.RequireFromString("100")))

	balB, err := l.Balance(ctx, "b")
	require.NoError(t, err)
	assert.True(t, balB.Equal(decimal.RequireFromString("-100")))
}
