package order

import "github.com/shopspring/decimal"

// Patch is a sparse change request against one order, already parsed from
// the transport. A nil field was absent (or carried a value of a type that
// could not be interpreted). Field values are kept as received: shape and
// integer checks belong to the decision step, which reports them with
// precise reasons.
type Patch struct {
	// Status is Unknown when the request named a status that does not exist.
	Status         *Status
	EscrowTxHash   *string
	DeliveryTxHash *string
	TradeID        *decimal.Decimal

	// CounterpartyID is only ever a signal that an acceptance is in
	// progress; its value is never persisted.
	CounterpartyID *decimal.Decimal
}

// IsEmpty reports whether no recognized field is present.
func (p Patch) IsEmpty() bool {
	return p.Status == nil &&
		p.EscrowTxHash == nil &&
		p.DeliveryTxHash == nil &&
		p.TradeID == nil &&
		p.CounterpartyID == nil
}

// HasEvidence reports whether any hash or trade id is present.
func (p Patch) HasEvidence() bool {
	return p.EscrowTxHash != nil || p.DeliveryTxHash != nil || p.TradeID != nil
}
