package order

import "otcdesk/internal/core/domain/model/kernel"

// Field names a persisted order column a plan may assign.
type Field string

const (
	FieldStatus         Field = "status"
	FieldCounterpartyID Field = "counterparty_id"
	FieldEscrowTxHash   Field = "escrow_tx_hash"
	FieldDeliveryTxHash Field = "delivery_tx_hash"
	FieldTradeID        Field = "trade_id"
)

// Assignment is one field/value pair of a plan.
type Assignment struct {
	Field Field
	Value any
}

// MutationPlan is the outcome of an accepted patch: the exact assignments to
// persist, plus the status they were decided against. The zero value is an
// empty plan. Plans are immutable; the With* methods return a copy.
type MutationPlan struct {
	expected       Status
	status         *Status
	counterpartyID *int64
	escrowTxHash   *kernel.TxHash
	deliveryTxHash *kernel.TxHash
	tradeID        *int64
}

// NewMutationPlan starts an empty plan decided against expected.
func NewMutationPlan(expected Status) MutationPlan {
	return MutationPlan{expected: expected}
}

func (p MutationPlan) WithStatus(s Status) MutationPlan {
	p.status = &s
	return p
}

func (p MutationPlan) WithCounterpartyID(id int64) MutationPlan {
	p.counterpartyID = &id
	return p
}

func (p MutationPlan) WithEscrowTxHash(h kernel.TxHash) MutationPlan {
	p.escrowTxHash = &h
	return p
}

func (p MutationPlan) WithDeliveryTxHash(h kernel.TxHash) MutationPlan {
	p.deliveryTxHash = &h
	return p
}

func (p MutationPlan) WithTradeID(id int64) MutationPlan {
	p.tradeID = &id
	return p
}

// ExpectedStatus is the status the plan was decided against. Persistence
// uses it as the optimistic write predicate.
func (p MutationPlan) ExpectedStatus() Status {
	return p.expected
}

func (p MutationPlan) Status() (Status, bool) {
	if p.status == nil {
		return Unknown, false
	}
	return *p.status, true
}

func (p MutationPlan) CounterpartyID() (int64, bool) {
	if p.counterpartyID == nil {
		return 0, false
	}
	return *p.counterpartyID, true
}

func (p MutationPlan) EscrowTxHash() (kernel.TxHash, bool) {
	if p.escrowTxHash == nil {
		return kernel.TxHash{}, false
	}
	return *p.escrowTxHash, true
}

func (p MutationPlan) DeliveryTxHash() (kernel.TxHash, bool) {
	if p.deliveryTxHash == nil {
		return kernel.TxHash{}, false
	}
	return *p.deliveryTxHash, true
}

func (p MutationPlan) TradeID() (int64, bool) {
	if p.tradeID == nil {
		return 0, false
	}
	return *p.tradeID, true
}

// IsTransition reports whether the plan changes the status.
func (p MutationPlan) IsTransition() bool {
	return p.status != nil
}

func (p MutationPlan) IsEmpty() bool {
	return len(p.Assignments()) == 0
}

// Assignments lists the plan in write order: status, counterparty_id,
// escrow_tx_hash, delivery_tx_hash, trade_id. Values are wire values
// (strings and int64s).
func (p MutationPlan) Assignments() []Assignment {
	var out []Assignment
	if p.status != nil {
		out = append(out, Assignment{Field: FieldStatus, Value: p.status.String()})
	}
	if p.counterpartyID != nil {
		out = append(out, Assignment{Field: FieldCounterpartyID, Value: *p.counterpartyID})
	}
	if p.escrowTxHash != nil {
		out = append(out, Assignment{Field: FieldEscrowTxHash, Value: p.escrowTxHash.String()})
	}
	if p.deliveryTxHash != nil {
		out = append(out, Assignment{Field: FieldDeliveryTxHash, Value: p.deliveryTxHash.String()})
	}
	if p.tradeID != nil {
		out = append(out, Assignment{Field: FieldTradeID, Value: *p.tradeID})
	}
	return out
}
