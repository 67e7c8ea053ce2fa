package kernel_test

import (
	"testing"

	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWalletAddress(t *testing.T) {
	t.Run("lower cases the address", func(t *testing.T) {
		addr, err := kernel.NewWalletAddress("0x52908400098527886E0F7030069857D2E4169EE7")

		require.NoError(t, err)
		assert.Equal(t, "0x52908400098527886e0f7030069857d2e4169ee7", addr.String())
		assert.Equal(t, "0x52908400098527886E0F7030069857D2E4169EE7", addr.Checksum())
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		for _, in := range []string{
			"52908400098527886e0f7030069857d2e4169ee7",
			"0X52908400098527886e0f7030069857d2e4169ee7",
			"0x52908400098527886e0f7030069857d2e4169ee",
			"0x52908400098527886e0f7030069857d2e4169eez",
		} {
			_, err := kernel.NewWalletAddress(in)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, in)
		}
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := kernel.NewWalletAddress("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestParseAsset(t *testing.T) {
	for _, a := range kernel.SupportedAssets() {
		parsed, err := kernel.ParseAsset(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}

	_, err := kernel.ParseAsset("wbtc")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = kernel.ParseAsset("BTC")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
