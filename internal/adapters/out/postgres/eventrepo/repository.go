// Package eventrepo appends order audit events to the order_events table.
package eventrepo

import (
	"context"
	"time"

	"otcdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderEventDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   int64     `gorm:"not null;index"`
	EventType string    `gorm:"type:varchar(32);not null"`
	TxHash    *string   `gorm:"type:varchar(66);index"`
	TradeID   *int64    `gorm:"index"`
	ActorID   int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (OrderEventDTO) TableName() string {
	return "order_events"
}

func fromDomain(e *order.Event) OrderEventDTO {
	var txHash *string
	if h := e.TxHash(); h != nil {
		s := h.String()
		txHash = &s
	}
	return OrderEventDTO{
		ID:        e.ID().Bytes(),
		OrderID:   e.OrderID(),
		EventType: string(e.Type()),
		TxHash:    txHash,
		TradeID:   e.TradeID(),
		ActorID:   e.ActorID(),
		CreatedAt: e.CreatedAt(),
	}
}

type GormOrderEventRepository struct {
	db *gorm.DB
}

func NewGormOrderEventRepository(db *gorm.DB) *GormOrderEventRepository {
	return &GormOrderEventRepository{db: db}
}

// Add inserts all events in one statement.
func (r *GormOrderEventRepository) Add(ctx context.Context, events ...*order.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OrderEventDTO, 0, len(events))
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(e))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}
