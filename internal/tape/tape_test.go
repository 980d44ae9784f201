package tape

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTape(t *testing.T) *Tape {
	t.Helper()
	tp, err := New(filepath.Join(t.TempDir(), "tape.db"))
	require.NoError(t, err)
	t.Cleanup(func() { tp.Close() })
	return tp
}

func TestTapeRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	tp := newTestTape(t)

	base := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, tp.Record(ctx, Print{
			Symbol:        "BTCUSDT",
			Price:         "65100.5",
			Qty:           int64(i + 1),
			AggressorSide: "BUY",
			ExecutedAt:    base.Add(time.Duration(i) * time.Millisecond),
		}))
	}
	require.NoError(t, tp.Record(ctx, Print{
		Symbol: "ETHUSDT", Price: "3400", Qty: 7, AggressorSide: "SELL", ExecutedAt: base,
	}))

	prints, err := tp.Recent(ctx, "BTCUSDT", 10)
	require.NoError(t, err)
	require.Len(t, prints, 3)
	// Newest first.
	assert.Equal(t, int64(3), prints[0].Qty)
	assert.Equal(t, int64(1), prints[2].Qty)
	assert.Equal(t, "65100.5", prints[0].Price)
	assert.Equal(t, "BUY", prints[0].AggressorSide)
}

func TestTapeRecentLimit(t *testing.T) {
	ctx := context.Background()
	tp := newTestTape(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, tp.Record(ctx, Print{
			Symbol: "BTCUSDT", Price: "1", Qty: int64(i), AggressorSide: "BUY", ExecutedAt: time.Now(),
		}))
	}
	prints, err := tp.Recent(ctx, "BTCUSDT", 2)
	require.NoError(t, err)
	assert.Len(t, prints, 2)
}

func TestTapeEmptyPath(t *testing.T) {
	_, err := New("  ")
	assert.Error(t, err)
}
