package queries

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads the orders table joined with the seller.
//
// Example:
//
//	query, _ := NewListOrdersQuery(ListOrdersFilter{Statuses: []string{"PENDING"}}, TraderListLimit)
//	views, err := handler.Handle(ctx, query)
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := query.Filter()
	tx := h.db.WithContext(ctx).
		Table("orders o").
		Select(orderViewColumns).
		Joins("JOIN users u ON u.id = o.seller_id")

	if filter.SellerID > 0 {
		tx = tx.Where("o.seller_id = ?", filter.SellerID)
	}
	if len(filter.Statuses) > 0 {
		tx = tx.Where("o.status = ANY(?)", pq.Array(filter.Statuses))
	}
	if filter.Asset != "" {
		tx = tx.Where("o.asset = ?", filter.Asset)
	}
	if filter.QuoteToken != "" {
		tx = tx.Where("o.quote_token = ?", filter.QuoteToken)
	}

	rows, err := tx.Order("o.created_at DESC").Limit(query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	for rows.Next() {
		v, scanErr := scanOrderView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, v)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
