package kernel

import (
	"fmt"

	"otcdesk/internal/pkg/errs"
)

// Asset is a token symbol an order can trade or be quoted in.
type Asset string

const (
	AssetWBTC Asset = "WBTC"
	AssetWETH Asset = "WETH"
	AssetUSDT Asset = "USDT"
	AssetUSDC Asset = "USDC"
)

// SupportedAssets lists the assets in display order.
func SupportedAssets() []Asset {
	return []Asset{AssetWBTC, AssetWETH, AssetUSDT, AssetUSDC}
}

// ParseAsset accepts the exact upper-case symbol.
func ParseAsset(s string) (Asset, error) {
	for _, a := range SupportedAssets() {
		if string(a) == s {
			return a, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("asset", fmt.Errorf("%q is not supported", s))
}

func (a Asset) String() string {
	return string(a)
}

func (a Asset) Validate() error {
	_, err := ParseAsset(string(a))
	return err
}
