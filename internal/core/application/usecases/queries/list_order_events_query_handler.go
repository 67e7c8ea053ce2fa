package queries

import (
	"context"

	"otcdesk/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListOrderEventsQueryHandler struct {
	db *gorm.DB
}

func NewListOrderEventsQueryHandler(db *gorm.DB) ListOrderEventsQueryHandler {
	return ListOrderEventsQueryHandler{db: db}
}

// Handle returns events oldest first. An unknown order has an empty trail.
func (h ListOrderEventsQueryHandler) Handle(
	ctx context.Context,
	query ListOrderEventsQuery,
) ([]OrderEventView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			event_type,
			tx_hash,
			trade_id,
			actor_id,
			created_at
		FROM order_events
		WHERE order_id = ?
		ORDER BY created_at, id
	`, query.OrderID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]OrderEventView, 0)
	for rows.Next() {
		var event OrderEventView
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&event.OrderID,
			&event.EventType,
			&event.TxHash,
			&event.TradeID,
			&event.ActorID,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		eventID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		event.ID = eventID
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
