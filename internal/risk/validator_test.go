package risk

import (
	"testing"
	"time"

	"tradex/internal/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refQuote(last string) types.Quote {
	price := decimal.RequireFromString(last)
	return types.Quote{
		Symbol:    "BTCUSDT",
		LastPrice: price,
		Volume:    decimal.NewFromInt(1000),
		Timestamp: time.Now(),
	}
}

func request(typ types.OrderType, qty int64, limitPrice string) types.OrderRequest {
	req := types.OrderRequest{
		AccountID: "acct",
		Symbol:    "BTCUSDT",
		Side:      types.SideBuy,
		Type:      typ,
		Qty:       qty,
	}
	if limitPrice != "" {
		req.LimitPrice = decimal.NewNullDecimal(decimal.RequireFromString(limitPrice))
	}
	return req
}

func TestValidatorMaxOrderQty(t *testing.T) {
	v := NewValidator(Limits{MaxOrderQty: 100})

	assert.NoError(t, v.Validate(request(types.OrderTypeMarket, 100, ""), refQuote("150")))

	err := v.Validate(request(types.OrderTypeMarket, 101, ""), refQuote("150"))
	require.Error(t, err)
	assert.True(t, types.IsRiskViolation(err))
	assert.ErrorContains(t, err, "max_order_qty")
}

func TestValidatorMaxNotional(t *testing.T) {
	v := NewValidator(Limits{MaxNotional: decimal.RequireFromString("10000")})

	// Market orders price against the reference quote.
	assert.NoError(t, v.Validate(request(types.OrderTypeMarket, 66, ""), refQuote("150")))

	err := v.Validate(request(types.OrderTypeMarket, 67, ""), refQuote("150"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "max_notional")

	// Limit orders price against their own limit.
	err = v.Validate(request(types.OrderTypeLimit, 5, "2100"), refQuote("150"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "max_notional")
}

func TestValidatorPriceBand(t *testing.T) {
	v := NewValidator(Limits{PriceBandPct: decimal.RequireFromString("0.2")})

	assert.NoError(t, v.Validate(request(types.OrderTypeLimit, 1, "170"), refQuote("150")))
	assert.NoError(t, v.Validate(request(types.OrderTypeLimit, 1, "120"), refQuote("150")))

	err := v.Validate(request(types.OrderTypeLimit, 1, "190"), refQuote("150"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "price_band")

	// Market orders carry no limit price and skip the band.
	assert.NoError(t, v.Validate(request(types.OrderTypeMarket, 1, ""), refQuote("150")))
}

func TestValidatorZeroLimitsDisableChecks(t *testing.T) {
	v := NewValidator(Limits{})
	assert.NoError(t, v.Validate(request(types.OrderTypeLimit, 1000000, "999999"), refQuote("150")))
}
