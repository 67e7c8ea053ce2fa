package ports

import (
	"context"
	"time"

	"otcdesk/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Price is the USD quote of one asset.
type Price struct {
	Asset     kernel.Asset
	USD       decimal.Decimal
	UpdatedAt time.Time

	// Fallback marks a static quote served because the oracle could not be read.
	Fallback bool
}

// PriceFeed reads the latest USD price of one asset from an external oracle.
type PriceFeed interface {
	LatestPrice(ctx context.Context, asset kernel.Asset) (Price, error)
}

// PriceBoard serves the quotes of every supported asset, in
// kernel.SupportedAssets order.
type PriceBoard interface {
	Prices(ctx context.Context) ([]Price, error)
}
