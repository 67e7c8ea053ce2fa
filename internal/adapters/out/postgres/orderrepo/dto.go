// Package orderrepo persists order aggregates in the orders table.
package orderrepo

import (
	"time"

	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO is a row of the orders table. The primary key is the on-chain
// order id and is never generated by the database.
type OrderDTO struct {
	ID                int64           `gorm:"primaryKey;autoIncrement:false"`
	SellerID          int64           `gorm:"not null;index"`
	CounterpartyID    *int64          `gorm:"index"`
	Asset             string          `gorm:"type:varchar(8);not null;index"`
	QuoteToken        string          `gorm:"type:varchar(8);not null;index"`
	Quantity          decimal.Decimal `gorm:"type:numeric(36,18);not null"`
	PricePerUnit      decimal.Decimal `gorm:"type:numeric(36,18);not null"`
	TotalAmount       decimal.Decimal `gorm:"type:numeric(36,18);not null"`
	IsIndicativePrice bool            `gorm:"not null"`
	Status            string          `gorm:"type:varchar(16);not null;index"`
	CreateTxHash      string          `gorm:"type:varchar(66);not null"`
	EscrowTxHash      *string         `gorm:"type:varchar(66)"`
	DeliveryTxHash    *string         `gorm:"type:varchar(66)"`
	TradeID           *int64          `gorm:"index"`
	CreatedAt         time.Time       `gorm:"not null;index"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()
	return OrderDTO{
		ID:                s.ID,
		SellerID:          s.SellerID,
		CounterpartyID:    s.CounterpartyID,
		Asset:             s.Terms.Asset.String(),
		QuoteToken:        s.Terms.QuoteToken.String(),
		Quantity:          s.Terms.Quantity,
		PricePerUnit:      s.Terms.PricePerUnit,
		TotalAmount:       s.Terms.TotalAmount,
		IsIndicativePrice: s.IsIndicativePrice,
		Status:            s.Status.String(),
		CreateTxHash:      s.CreateTxHash.String(),
		EscrowTxHash:      hashString(s.EscrowTxHash),
		DeliveryTxHash:    hashString(s.DeliveryTxHash),
		TradeID:           s.TradeID,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	asset, err := kernel.ParseAsset(dto.Asset)
	if err != nil {
		return nil, err
	}
	quote, err := kernel.ParseAsset(dto.QuoteToken)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	createHash, err := kernel.NewTxHash(dto.CreateTxHash)
	if err != nil {
		return nil, err
	}
	escrowHash, err := parseHash(dto.EscrowTxHash)
	if err != nil {
		return nil, err
	}
	deliveryHash, err := parseHash(dto.DeliveryTxHash)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:             dto.ID,
		SellerID:       dto.SellerID,
		CounterpartyID: dto.CounterpartyID,
		Terms: order.Terms{
			Asset:        asset,
			QuoteToken:   quote,
			Quantity:     dto.Quantity,
			PricePerUnit: dto.PricePerUnit,
			TotalAmount:  dto.TotalAmount,
		},
		IsIndicativePrice: dto.IsIndicativePrice,
		Status:            status,
		CreateTxHash:      createHash,
		EscrowTxHash:      escrowHash,
		DeliveryTxHash:    deliveryHash,
		TradeID:           dto.TradeID,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
	})
}

func hashString(h *kernel.TxHash) *string {
	if h == nil {
		return nil
	}
	s := h.String()
	return &s
}

func parseHash(s *string) (*kernel.TxHash, error) {
	if s == nil {
		return nil, nil
	}
	h, err := kernel.NewTxHash(*s)
	if err != nil {
		return nil, err
	}
	return &h, nil
}
