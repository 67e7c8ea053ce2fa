package services

import (
	"errors"
	"fmt"

	"otcdesk/internal/core/domain/model/order"
)

var (
	// ErrTransitionForbidden is the family of rejections caused by who the
	// caller is. Transports map it to 403.
	ErrTransitionForbidden = errors.New("transition forbidden")

	// ErrTransitionRejected is the family of rejections caused by the state
	// of the order or the content of the patch. Transports map it to 400.
	ErrTransitionRejected = errors.New("transition rejected")
)

// Reason is a stable rejection code. Values are part of the HTTP contract.
type Reason string

const (
	ReasonNoUpdates                   Reason = "NO_UPDATES"
	ReasonInvalidCounterpartyMutation Reason = "INVALID_COUNTERPARTY_MUTATION"
	ReasonIllegalTransition           Reason = "ILLEGAL_TRANSITION"
	ReasonForbidden                   Reason = "FORBIDDEN"
	ReasonSellerSelfAccept            Reason = "SELLER_SELF_ACCEPT"
	ReasonCounterpartyAlreadySet      Reason = "COUNTERPARTY_ALREADY_SET"
	ReasonMissingEvidence             Reason = "MISSING_EVIDENCE"
	ReasonEvidenceWithoutTransition   Reason = "EVIDENCE_WITHOUT_TRANSITION"
	ReasonInvalidTradeID              Reason = "INVALID_TRADE_ID"
	ReasonTradeIDImmutable            Reason = "TRADE_ID_IMMUTABLE"
	ReasonNoValidUpdates              Reason = "NO_VALID_UPDATES"
)

// IsForbidden reports whether the reason belongs to the authorization family.
func (r Reason) IsForbidden() bool {
	return r == ReasonForbidden || r == ReasonSellerSelfAccept
}

// Rejection is returned by OrderTransitionAuthority.Decide when a patch is not
// admissible. From and To describe the requested edge; To is Unknown when the
// patch did not request a status.
type Rejection struct {
	Reason  Reason
	From    order.Status
	To      order.Status
	Message string
}

func newRejection(reason Reason, from, to order.Status, format string, args ...any) *Rejection {
	return &Rejection{Reason: reason, From: from, To: to, Message: fmt.Sprintf(format, args...)}
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Reason, r.Message)
}

func (r *Rejection) Unwrap() error {
	if r.Reason.IsForbidden() {
		return ErrTransitionForbidden
	}
	return ErrTransitionRejected
}

// AsRejection extracts a *Rejection from err's chain.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
