package services

import (
	"math"

	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/core/domain/model/order"
	"otcdesk/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
)

var (
	minTradeID = decimal.NewFromInt(math.MinInt64)
	maxTradeID = decimal.NewFromInt(math.MaxInt64)
)

// OrderTransitionAuthority decides, for one caller, one order and one patch,
// which writes are admissible. It performs no I/O and holds no state, so a
// single instance is safe for concurrent use.
//
// Decide runs these checks in order and stops at the first failure:
//
//  1. the patch carries at least one recognized field
//  2. counterparty_id only accompanies PENDING -> ESCROWED
//  3. the requested status is an edge of the lifecycle
//  4. the caller may take that edge and supplied the evidence it requires
//  5. every piece of evidence belongs to the requested edge
//  6. an admin-attached trade_id is an integer
//  7. the resulting plan is not empty
//
// The counterparty written on acceptance is always the caller, never the
// value sent in the patch.
type OrderTransitionAuthority struct{}

func NewOrderTransitionAuthority() *OrderTransitionAuthority {
	return &OrderTransitionAuthority{}
}

// Decide returns the plan to persist, a *Rejection, or an error if o itself
// is not a valid aggregate.
//
// Parameters:
//   - caller: the authenticated user, with the role read from storage
//   - o: the order as last read
//   - patch: the request fields, kept verbatim; nil means absent
//
// Returns:
//   - order.MutationPlan: assignments to persist, decided against o.Status()
//   - error: a *Rejection naming the first failing check
//
// Example:
//
//	plan, err := authority.Decide(user.NewCaller(7, user.RoleTrader), o, patch)
//	if rejection, ok := AsRejection(err); ok {
//	    return rejection.Reason
//	}
//	_ = o.Apply(plan)
func (a *OrderTransitionAuthority) Decide(
	caller user.Caller,
	o *order.Order,
	patch order.Patch,
) (order.MutationPlan, error) {
	if err := o.Validate(); err != nil {
		return order.MutationPlan{}, err
	}

	from := o.Status()
	to := order.Unknown
	hasStatus := patch.Status != nil
	if hasStatus {
		to = *patch.Status
	}

	if patch.IsEmpty() {
		return reject(ReasonNoUpdates, from, to, "no updates provided")
	}

	if patch.CounterpartyID != nil && !(hasStatus && from == order.Pending && to == order.Escrowed) {
		return reject(ReasonInvalidCounterpartyMutation, from, to,
			"counterparty_id cannot be set or changed directly")
	}

	if hasStatus && !from.CanTransitionTo(to) {
		return reject(ReasonIllegalTransition, from, to, "cannot transition from %s to %s", from, to)
	}

	var (
		isSeller = o.IsSeller(caller.ID)
		isBuyer  = o.IsBuyer(caller.ID)
		isAdmin  = caller.IsAdmin()
		plan     = order.NewMutationPlan(from)
	)

	if hasStatus {
		var rejection *Rejection
		plan, rejection = a.decideTransition(o, patch, from, to, isSeller, isBuyer, isAdmin, caller.ID)
		if rejection != nil {
			return order.MutationPlan{}, rejection
		}
	}

	if rejection := checkEvidenceBelongs(patch, hasStatus, from, to, isAdmin); rejection != nil {
		return order.MutationPlan{}, rejection
	}

	if patch.TradeID != nil && hasStatus && to != order.Escrowed {
		tradeID, ok := tradeIDValue(*patch.TradeID)
		if !ok {
			return reject(ReasonInvalidTradeID, from, to, "trade_id must be an integer")
		}
		plan = plan.WithTradeID(tradeID)
	}

	if tradeID, ok := plan.TradeID(); ok {
		if current := o.TradeID(); current != nil && *current != tradeID {
			return reject(ReasonTradeIDImmutable, from, to, "trade_id is already set to %d", *current)
		}
	}

	if plan.IsEmpty() {
		return reject(ReasonNoValidUpdates, from, to, "no valid updates provided")
	}

	return plan, nil
}

// decideTransition applies the per-target rules. The edge itself is already
// known to be legal, but each branch still checks its source status so that
// the rules read the same as the lifecycle table.
func (a *OrderTransitionAuthority) decideTransition(
	o *order.Order,
	patch order.Patch,
	from, to order.Status,
	isSeller, isBuyer, isAdmin bool,
	callerID int64,
) (order.MutationPlan, *Rejection) {
	plan := order.NewMutationPlan(from).WithStatus(to)

	switch to {
	case order.Escrowed:
		if from != order.Pending {
			return plan, newRejection(ReasonIllegalTransition, from, to, "order is not pending")
		}
		if isSeller {
			return plan, newRejection(ReasonSellerSelfAccept, from, to, "seller cannot accept own order")
		}
		if o.CounterpartyID() != nil {
			return plan, newRejection(ReasonCounterpartyAlreadySet, from, to, "order already has a counterparty")
		}
		escrowHash, ok := evidence(patch.EscrowTxHash)
		if !ok {
			return plan, newRejection(ReasonMissingEvidence, from, to, "escrow_tx_hash is required (valid 0x... hash)")
		}
		plan = plan.WithCounterpartyID(callerID).WithEscrowTxHash(escrowHash)
		if patch.TradeID != nil {
			tradeID, ok := tradeIDValue(*patch.TradeID)
			if !ok {
				return plan, newRejection(ReasonInvalidTradeID, from, to, "trade_id must be an integer")
			}
			plan = plan.WithTradeID(tradeID)
		}

	case order.Cancelled:
		switch from {
		case order.Pending:
			if !isSeller && !isAdmin {
				return plan, newRejection(ReasonForbidden, from, to, "only seller or admin can cancel a pending order")
			}
		case order.Disputed:
			if !isAdmin {
				return plan, newRejection(ReasonForbidden, from, to, "only admin can cancel a disputed order")
			}
		default:
			return plan, newRejection(ReasonIllegalTransition, from, to, "cancel not allowed in current status")
		}

	case order.Delivered:
		if !isSeller {
			return plan, newRejection(ReasonForbidden, from, to, "only seller can mark delivered")
		}
		if from != order.Escrowed {
			return plan, newRejection(ReasonIllegalTransition, from, to, "order must be escrowed first")
		}
		deliveryHash, ok := evidence(patch.DeliveryTxHash)
		if !ok {
			return plan, newRejection(ReasonMissingEvidence, from, to, "delivery_tx_hash is required (valid 0x... hash)")
		}
		plan = plan.WithDeliveryTxHash(deliveryHash)

	case order.Completed:
		switch from {
		case order.Delivered:
			if !isBuyer {
				return plan, newRejection(ReasonForbidden, from, to, "only buyer can complete after delivery")
			}
		case order.Disputed:
			if !isAdmin {
				return plan, newRejection(ReasonForbidden, from, to, "only admin can resolve disputed orders")
			}
		default:
			return plan, newRejection(ReasonIllegalTransition, from, to, "complete not allowed in current status")
		}

	case order.Disputed:
		if from != order.Delivered {
			return plan, newRejection(ReasonIllegalTransition, from, to, "only delivered orders can be disputed")
		}
		if !isBuyer {
			return plan, newRejection(ReasonForbidden, from, to, "only buyer can dispute after delivery")
		}

	default:
		return plan, newRejection(ReasonIllegalTransition, from, to, "cannot transition from %s to %s", from, to)
	}

	return plan, nil
}

// checkEvidenceBelongs rejects any hash or trade_id that the requested edge
// would not write. Without a status nothing may be written at all.
func checkEvidenceBelongs(patch order.Patch, hasStatus bool, from, to order.Status, isAdmin bool) *Rejection {
	if !hasStatus {
		if patch.EscrowTxHash != nil || patch.TradeID != nil {
			return newRejection(ReasonEvidenceWithoutTransition, from, to,
				"escrow_tx_hash/trade_id updates require status=ESCROWED")
		}
		if patch.DeliveryTxHash != nil {
			return newRejection(ReasonEvidenceWithoutTransition, from, to,
				"delivery_tx_hash updates require status=DELIVERED")
		}
		return nil
	}

	if patch.EscrowTxHash != nil && to != order.Escrowed {
		return newRejection(ReasonEvidenceWithoutTransition, from, to,
			"escrow_tx_hash updates require status=ESCROWED")
	}
	if patch.DeliveryTxHash != nil && to != order.Delivered {
		return newRejection(ReasonEvidenceWithoutTransition, from, to,
			"delivery_tx_hash updates require status=DELIVERED")
	}
	if patch.TradeID != nil && to != order.Escrowed && !isAdmin {
		return newRejection(ReasonEvidenceWithoutTransition, from, to,
			"trade_id updates require status=ESCROWED")
	}
	return nil
}

func evidence(raw *string) (kernel.TxHash, bool) {
	if raw == nil {
		return kernel.TxHash{}, false
	}
	h, err := kernel.NewTxHash(*raw)
	if err != nil {
		return kernel.TxHash{}, false
	}
	return h, true
}

// tradeIDValue accepts integral numbers representable as int64.
func tradeIDValue(d decimal.Decimal) (int64, bool) {
	if !d.IsInteger() || d.LessThan(minTradeID) || d.GreaterThan(maxTradeID) {
		return 0, false
	}
	return d.IntPart(), true
}

func reject(reason Reason, from, to order.Status, format string, args ...any) (order.MutationPlan, error) {
	return order.MutationPlan{}, newRejection(reason, from, to, format, args...)
}
