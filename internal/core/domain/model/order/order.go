package order

import (
	"errors"
	"fmt"
	"math"
	"time"

	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrPlanIsStale is returned by Apply when the plan was decided against a
	// status the order no longer has.
	ErrPlanIsStale = errors.New("mutation plan was decided against a different status")
)

// Terms is the UI pricing snapshot captured when an order is mirrored. It is
// never authoritative for settlement.
type Terms struct {
	Asset        kernel.Asset
	QuoteToken   kernel.Asset
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
	TotalAmount  decimal.Decimal
}

// Order is the aggregate root for a mirrored on-chain order.
//
// Invariants:
//   - id and sellerID are positive and never change
//   - counterpartyID is nil while PENDING and fixed once set
//   - escrowTxHash is set iff the order passed through ESCROWED
//   - deliveryTxHash is set iff the order passed through DELIVERED
//   - tradeID never changes once set
type Order struct {
	// id is the on-chain order id
	id int64

	// sellerID is the user who created the order on-chain
	sellerID int64

	// counterpartyID is the accepting user (nil until ESCROWED)
	counterpartyID *int64

	// terms is the pricing snapshot shown when the order was mirrored
	terms Terms

	// isIndicativePrice is always true; the chain settles the real price
	isIndicativePrice bool

	// status is the current lifecycle state
	status Status

	// createTxHash is the transaction that created the order on-chain
	createTxHash kernel.TxHash

	// escrowTxHash is the acceptance transaction
	escrowTxHash *kernel.TxHash

	// deliveryTxHash is the seller's delivery transaction
	deliveryTxHash *kernel.TxHash

	// tradeID is the on-chain trade reference, immutable once set
	tradeID *int64

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order came from NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder mirrors an order that was just created on-chain. The order starts
// PENDING with no counterparty and no evidence beyond createTxHash.
//
// Parameters:
//   - id: on-chain order id (must be positive)
//   - sellerID: id of the mirroring user (must be positive)
//   - terms: whitelisted asset pair, positive quantity, non-negative amounts
//   - createTxHash: hash of the creating transaction
//   - now: creation time, also used as updatedAt
//
// Returns:
//   - *Order: the PENDING order
//   - error: every failing field, joined
//
// Example:
//
//	hash, _ := kernel.NewTxHash("0x" + strings.Repeat("a", 64))
//	o, err := NewOrder(42, sellerID, order.Terms{
//	    Asset:        kernel.AssetWBTC,
//	    QuoteToken:   kernel.AssetUSDC,
//	    Quantity:     decimal.NewFromInt(1),
//	    PricePerUnit: decimal.NewFromInt(97500),
//	    TotalAmount:  decimal.NewFromInt(97500),
//	}, hash, time.Now().UTC())
func NewOrder(id, sellerID int64, terms Terms, createTxHash kernel.TxHash, now time.Time) (*Order, error) {
	o := &Order{
		status:            Pending,
		isIndicativePrice: true,
		createdAt:         now,
		updatedAt:         now,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setSellerID(sellerID),
		o.setTerms(terms),
		o.setCreateTxHash(createTxHash),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot carries every persisted attribute of an order. Repositories use it
// to rebuild the aggregate.
type Snapshot struct {
	ID                int64
	SellerID          int64
	CounterpartyID    *int64
	Terms             Terms
	IsIndicativePrice bool
	Status            Status
	CreateTxHash      kernel.TxHash
	EscrowTxHash      *kernel.TxHash
	DeliveryTxHash    *kernel.TxHash
	TradeID           *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RestoreOrder rebuilds an order from storage and rejects snapshots whose
// evidence does not match their status.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		isIndicativePrice: s.IsIndicativePrice,
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setSellerID(s.SellerID),
		o.setTerms(s.Terms),
		o.setCreateTxHash(s.CreateTxHash),
		s.Status.Validate(),
		validateEvidence(s.Status, s.CounterpartyID != nil, s.EscrowTxHash != nil, s.DeliveryTxHash != nil),
	); err != nil {
		return nil, err
	}

	o.status = s.Status
	o.counterpartyID = copyInt64(s.CounterpartyID)
	o.escrowTxHash = copyTxHash(s.EscrowTxHash)
	o.deliveryTxHash = copyTxHash(s.DeliveryTxHash)
	o.tradeID = copyInt64(s.TradeID)
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() int64 {
	return o.id
}

// SellerID is the user that created the order on-chain.
func (o *Order) SellerID() int64 {
	return o.sellerID
}

// CounterpartyID is the buyer, nil until the order is accepted.
func (o *Order) CounterpartyID() *int64 {
	return copyInt64(o.counterpartyID)
}

func (o *Order) Terms() Terms {
	return o.terms
}

func (o *Order) IsIndicativePrice() bool {
	return o.isIndicativePrice
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreateTxHash() kernel.TxHash {
	return o.createTxHash
}

func (o *Order) EscrowTxHash() *kernel.TxHash {
	return copyTxHash(o.escrowTxHash)
}

func (o *Order) DeliveryTxHash() *kernel.TxHash {
	return copyTxHash(o.deliveryTxHash)
}

func (o *Order) TradeID() *int64 {
	return copyInt64(o.tradeID)
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsSeller reports whether userID created the order.
func (o *Order) IsSeller(userID int64) bool {
	return o.sellerID == userID
}

// IsBuyer reports whether userID is the accepted counterparty.
func (o *Order) IsBuyer(userID int64) bool {
	return o.counterpartyID != nil && *o.counterpartyID == userID
}

// Snapshot exports the persisted attributes of the order.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                o.id,
		SellerID:          o.sellerID,
		CounterpartyID:    copyInt64(o.counterpartyID),
		Terms:             o.terms,
		IsIndicativePrice: o.isIndicativePrice,
		Status:            o.status,
		CreateTxHash:      o.createTxHash,
		EscrowTxHash:      copyTxHash(o.escrowTxHash),
		DeliveryTxHash:    copyTxHash(o.deliveryTxHash),
		TradeID:           copyInt64(o.tradeID),
		CreatedAt:         o.createdAt,
		UpdatedAt:         o.updatedAt,
	}
}

// Apply performs every assignment of plan or none of them.
//
// The plan must have been decided against the current status; otherwise
// ErrPlanIsStale is returned. Apply does not decide who may do what, it only
// guards the structural invariants listed on Order.
func (o *Order) Apply(plan MutationPlan, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if plan.IsEmpty() {
		return errs.NewValueIsRequiredError("mutation plan")
	}
	if plan.ExpectedStatus() != o.status {
		return fmt.Errorf("%w: decided against %s, order is %s", ErrPlanIsStale, plan.ExpectedStatus(), o.status)
	}

	next := *o
	if status, ok := plan.Status(); ok {
		if !o.status.CanTransitionTo(status) {
			return errs.NewValueIsInvalidErrorWithCause(
				"status",
				fmt.Errorf("cannot transition from %s to %s", o.status, status),
			)
		}
		next.status = status
	}
	if id, ok := plan.CounterpartyID(); ok {
		if o.counterpartyID != nil {
			return errs.NewValueIsInvalidErrorWithCause("counterparty_id", errors.New("counterparty is already set"))
		}
		next.counterpartyID = &id
	}
	if h, ok := plan.EscrowTxHash(); ok {
		next.escrowTxHash = &h
	}
	if h, ok := plan.DeliveryTxHash(); ok {
		next.deliveryTxHash = &h
	}
	if id, ok := plan.TradeID(); ok {
		if o.tradeID != nil && *o.tradeID != id {
			return errs.NewValueIsInvalidErrorWithCause(
				"trade_id",
				fmt.Errorf("trade id is already %d", *o.tradeID),
			)
		}
		next.tradeID = &id
	}

	if err := validateEvidence(
		next.status,
		next.counterpartyID != nil,
		next.escrowTxHash != nil,
		next.deliveryTxHash != nil,
	); err != nil {
		return err
	}

	next.updatedAt = now
	*o = next
	return nil
}

func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("id", id, 1, int64(math.MaxInt64))
	}
	o.id = id
	return nil
}

func (o *Order) setSellerID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("seller_id", id, 1, int64(math.MaxInt64))
	}
	o.sellerID = id
	return nil
}

func (o *Order) setCreateTxHash(h kernel.TxHash) error {
	if err := h.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("create_tx_hash", err)
	}
	o.createTxHash = h
	return nil
}

func (o *Order) setTerms(t Terms) error {
	if err := errors.Join(
		t.Asset.Validate(),
		t.QuoteToken.Validate(),
	); err != nil {
		return err
	}
	if !t.Quantity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%s is not greater than 0", t.Quantity))
	}
	if t.PricePerUnit.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price_per_unit", fmt.Errorf("%s is negative", t.PricePerUnit))
	}
	if t.TotalAmount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("total_amount", fmt.Errorf("%s is negative", t.TotalAmount))
	}
	o.terms = t
	return nil
}

// validateEvidence checks that counterparty and hashes agree with status.
func validateEvidence(status Status, hasCounterparty, hasEscrow, hasDelivery bool) error {
	var violations []error
	check := func(field string, present bool, milestone Status) {
		if status.requires(milestone) && !present {
			violations = append(violations, errs.NewValueIsInvalidErrorWithCause(
				field, fmt.Errorf("%s order must have %s", status, field)))
		}
		if status.excludes(milestone) && present {
			violations = append(violations, errs.NewValueIsInvalidErrorWithCause(
				field, fmt.Errorf("%s order cannot have %s", status, field)))
		}
	}

	check("counterparty_id", hasCounterparty, Escrowed)
	check("escrow_tx_hash", hasEscrow, Escrowed)
	check("delivery_tx_hash", hasDelivery, Delivered)

	// A cancelled order may or may not have been escrowed, but delivery
	// evidence without escrow evidence is never consistent.
	if hasDelivery && !hasEscrow {
		violations = append(violations, errs.NewValueIsInvalidErrorWithCause(
			"delivery_tx_hash", errors.New("delivery evidence without escrow evidence")))
	}

	return errors.Join(violations...)
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyTxHash(v *kernel.TxHash) *kernel.TxHash {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
