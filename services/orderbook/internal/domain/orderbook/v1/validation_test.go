package v1

import (
	stderrors "errors"
	"testing"

	"github.com/muhammadchandra19/orderbook-pricing/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePositive(t *testing.T) {
	testCases := []struct {
		raw     string
		message string
	}{
		{raw: "1.5"},
		{raw: "", message: "Amount is mandatory but was not present in request"},
		{raw: "abc", message: "Amount is not a valid decimal"},
		{raw: "0", message: "Amount is invalid (must be > 0)"},
		{raw: "-3", message: "Amount is invalid (must be > 0)"},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			d, detail := ParsePositive("Amount", "amount", tc.raw)
			if tc.message == "" {
				require.Nil(t, detail)
				assert.Equal(t, tc.raw, d.String())
				return
			}
			require.NotNil(t, detail)
			assert.Equal(t, tc.message, detail.Message)
			assert.Equal(t, CodeValidation, detail.Code)
			assert.Equal(t, "amount", detail.Field)
		})
	}
}

func TestParseAsset(t *testing.T) {
	asset, details := ParseAsset("coin_pair", "BTCUSD")
	assert.Empty(t, details)
	assert.Equal(t, AssetDefinition{Class: AssetClassCoinPair, Symbol: "BTCUSD"}, asset)

	_, details = ParseAsset("equity", "")
	require.Len(t, details, 2)
	assert.Equal(t, "asset.class", details[0].Field)
	assert.Equal(t, "asset.symbol", details[1].Field)
}

func TestParseSideAndOrderID(t *testing.T) {
	side, detail := ParseSide("sell")
	assert.Nil(t, detail)
	assert.Equal(t, SideSell, side)

	_, detail = ParseSide("hold")
	assert.NotNil(t, detail)

	_, detail = ParseOrderID("")
	require.NotNil(t, detail)
	assert.Equal(t, "OrderId is mandatory but was not present in request", detail.Message)

	_, detail = ParseOrderID("123")
	require.NotNil(t, detail)
	assert.Equal(t, "OrderId is not a valid UUID", detail.Message)
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Add(nil)
	assert.NoError(t, c.Err())

	_, d1 := ParseSide("x")
	_, d2 := ParsePositive("Price", "price", "0")
	c.Add(d1, d2)

	err := c.Err()
	require.Error(t, err)
	assert.Equal(t, "side: Side is invalid (must be buy or sell); price: Price is invalid (must be > 0)", err.Error())

	var base *errors.BaseError
	require.True(t, stderrors.As(err, &base))
	assert.True(t, base.IsAnyCodeEqual(CodeValidation))
}

func TestErrorsMatchByCode(t *testing.T) {
	assert.ErrorIs(t, NewStoreUnavailableError("boom"), ErrStoreUnavailable)
	assert.NotErrorIs(t, ErrOrderNotFound, ErrBookNotFound)
	assert.True(t, IsKnownCode(CodeUnsatisfiableLiquidity))
	assert.False(t, IsKnownCode(CodeValidation))
	assert.Equal(t, SideSell, SideBuy.Opposite())
	assert.Equal(t, "coin_pair:BTCUSD", AssetDefinition{Class: AssetClassCoinPair, Symbol: "BTCUSD"}.String())
}
