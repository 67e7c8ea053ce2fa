package fee_test

import (
	"testing"
	"time"

	"otcdesk/internal/core/domain/model/fee"
	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	c, err := fee.NewConfig(kernel.AssetWETH, 25, 10, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, kernel.AssetWETH, c.Asset())
	assert.Equal(t, 25, c.FeeBps())
	assert.Equal(t, 10, c.SpreadBps())

	_, err = fee.NewConfig("DOGE", 25, 10, time.Time{})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = fee.NewConfig(kernel.AssetWETH, 10001, 10, time.Time{})
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestConfig_Update(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("should update only provided values", func(t *testing.T) {
		c, err := fee.NewConfig(kernel.AssetWBTC, 30, 15, time.Time{})
		require.NoError(t, err)
		spread := 20

		require.NoError(t, c.Update(nil, &spread, now))

		assert.Equal(t, 30, c.FeeBps())
		assert.Equal(t, 20, c.SpreadBps())
		assert.Equal(t, now, c.UpdatedAt())
	})

	t.Run("should apply nothing when one value is out of range", func(t *testing.T) {
		c, err := fee.NewConfig(kernel.AssetWBTC, 30, 15, time.Time{})
		require.NoError(t, err)
		feeBps, spread := 40, -1

		err = c.Update(&feeBps, &spread, now)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, 30, c.FeeBps())
		assert.True(t, c.UpdatedAt().IsZero())
	})

	t.Run("should require at least one value", func(t *testing.T) {
		c, err := fee.NewConfig(kernel.AssetWBTC, 30, 15, time.Time{})
		require.NoError(t, err)

		require.ErrorIs(t, c.Update(nil, nil, now), errs.ErrValueIsRequired)
	})
}
