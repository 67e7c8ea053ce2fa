package ports

import (
	"context"

	"otcdesk/internal/core/domain/model/fee"
	"otcdesk/internal/core/domain/model/kernel"
)

type FeeRepository interface {
	Get(ctx context.Context, asset kernel.Asset) (*fee.Config, error)
	// Save inserts or replaces the schedule of c.Asset().
	Save(ctx context.Context, c *fee.Config) error
}
