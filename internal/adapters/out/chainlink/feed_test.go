package chainlink

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"otcdesk/internal/core/domain/model/kernel"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wbtcFeed = common.HexToAddress("0xF4030086522a5bEEa4988F8cA5B36dbC97BeE88c")

type fakeAggregator struct {
	abi       abi.ABI
	decimals  uint8
	answer    *big.Int
	updatedAt int64
	err       error
	calls     []common.Address
}

func newFakeAggregator(t *testing.T, decimals uint8, answer int64, updatedAt int64) *fakeAggregator {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(aggregatorABI))
	require.NoError(t, err)
	return &fakeAggregator{abi: parsed, decimals: decimals, answer: big.NewInt(answer), updatedAt: updatedAt}
}

func (f *fakeAggregator) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, *msg.To)

	switch {
	case bytes.HasPrefix(msg.Data, f.abi.Methods["decimals"].ID):
		return f.abi.Methods["decimals"].Outputs.Pack(f.decimals)
	case bytes.HasPrefix(msg.Data, f.abi.Methods["latestRoundData"].ID):
		return f.abi.Methods["latestRoundData"].Outputs.Pack(
			big.NewInt(42), f.answer, big.NewInt(f.updatedAt-10), big.NewInt(f.updatedAt), big.NewInt(42))
	}
	return nil, errors.New("unexpected selector")
}

func TestFeed_LatestPrice_Success(t *testing.T) {
	agg := newFakeAggregator(t, 8, 9_750_012_345_678, 1_700_000_000)
	feed, err := NewFeed(agg, map[kernel.Asset]common.Address{kernel.AssetWBTC: wbtcFeed})
	require.NoError(t, err)

	price, err := feed.LatestPrice(t.Context(), kernel.AssetWBTC)

	require.NoError(t, err)
	assert.Equal(t, kernel.AssetWBTC, price.Asset)
	assert.True(t, decimal.RequireFromString("97500.12345678").Equal(price.USD), price.USD.String())
	assert.Equal(t, time.Unix(1_700_000_000, 0).UTC(), price.UpdatedAt)
	assert.False(t, price.Fallback)
	assert.Equal(t, []common.Address{wbtcFeed, wbtcFeed}, agg.calls)
}

func TestFeed_LatestPrice_NotConfigured(t *testing.T) {
	agg := newFakeAggregator(t, 8, 1, 1)
	feed, err := NewFeed(agg, map[kernel.Asset]common.Address{
		kernel.AssetWBTC: wbtcFeed,
		kernel.AssetUSDT: {},
	})
	require.NoError(t, err)

	_, err = feed.LatestPrice(t.Context(), kernel.AssetUSDT)

	require.ErrorIs(t, err, ErrFeedNotConfigured)
	assert.Empty(t, agg.calls)
}

func TestFeed_LatestPrice_CallError(t *testing.T) {
	agg := newFakeAggregator(t, 8, 1, 1)
	agg.err = errors.New("connection refused")
	feed, err := NewFeed(agg, map[kernel.Asset]common.Address{kernel.AssetWBTC: wbtcFeed})
	require.NoError(t, err)

	_, err = feed.LatestPrice(t.Context(), kernel.AssetWBTC)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), "decimals")
}

func TestFeed_LatestPrice_NonPositiveAnswer(t *testing.T) {
	agg := newFakeAggregator(t, 8, 0, 1_700_000_000)
	feed, err := NewFeed(agg, map[kernel.Asset]common.Address{kernel.AssetWBTC: wbtcFeed})
	require.NoError(t, err)

	_, err = feed.LatestPrice(t.Context(), kernel.AssetWBTC)

	require.ErrorIs(t, err, ErrNonPositiveAnswer)
}

func TestNewFeed(t *testing.T) {
	t.Run("nil caller", func(t *testing.T) {
		_, err := NewFeed(nil, nil)
		require.Error(t, err)
	})

	t.Run("unsupported asset", func(t *testing.T) {
		agg := newFakeAggregator(t, 8, 1, 1)
		_, err := NewFeed(agg, map[kernel.Asset]common.Address{"DOGE": wbtcFeed})
		require.Error(t, err)
	})
}
