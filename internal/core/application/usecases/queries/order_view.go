package queries

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// OrderView is an order joined with its seller's public profile.
type OrderView struct {
	ID                int64
	SellerID          int64
	SellerWallet      string
	SellerCompany     *string
	CounterpartyID    *int64
	Asset             string
	QuoteToken        string
	Quantity          decimal.Decimal
	PricePerUnit      decimal.Decimal
	TotalAmount       decimal.Decimal
	IsIndicativePrice bool
	Status            string
	CreateTxHash      string
	EscrowTxHash      *string
	DeliveryTxHash    *string
	TradeID           *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

const orderViewColumns = `o.id, o.seller_id, u.wallet_address, u.company_name, o.counterparty_id,
	o.asset, o.quote_token, o.quantity, o.price_per_unit, o.total_amount,
	o.is_indicative_price, o.status, o.create_tx_hash, o.escrow_tx_hash,
	o.delivery_tx_hash, o.trade_id, o.created_at, o.updated_at`

func scanOrderView(rows *sql.Rows) (OrderView, error) {
	var v OrderView
	err := rows.Scan(
		&v.ID,
		&v.SellerID,
		&v.SellerWallet,
		&v.SellerCompany,
		&v.CounterpartyID,
		&v.Asset,
		&v.QuoteToken,
		&v.Quantity,
		&v.PricePerUnit,
		&v.TotalAmount,
		&v.IsIndicativePrice,
		&v.Status,
		&v.CreateTxHash,
		&v.EscrowTxHash,
		&v.DeliveryTxHash,
		&v.TradeID,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	return v, err
}
