package order

import (
	"fmt"

	"otcdesk/internal/pkg/errs"
)

// Status is the lifecycle state of a mirrored order.
type Status int

const (
	// Unknown is the zero value. It is also what an unrecognized status
	// string from a request parses to, so that it fails edge legality.
	Unknown Status = iota

	// Pending is the state of a freshly mirrored order awaiting a buyer.
	Pending

	// Escrowed means a counterparty locked funds against the order.
	Escrowed

	// Delivered means the seller submitted on-chain delivery.
	Delivered

	// Completed means funds were released. Terminal.
	Completed

	// Cancelled means the order was withdrawn or refunded. Terminal.
	Cancelled

	// Disputed means the buyer rejected the delivery and an admin must resolve it.
	Disputed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Escrowed:  "ESCROWED",
		Delivered: "DELIVERED",
		Completed: "COMPLETED",
		Cancelled: "CANCELLED",
		Disputed:  "DISPUTED",
	}
}

// getTransitions is the static edge table. Statuses without an entry have no
// outgoing edges.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and unknown statuses have no edges
	return map[Status][]Status{
		Pending:   {Escrowed, Cancelled},
		Escrowed:  {Delivered},
		Delivered: {Completed, Disputed},
		Disputed:  {Completed, Cancelled},
	}
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Escrowed, Delivered, Completed, Cancelled, Disputed}
}

// ParseStatus maps the wire representation onto a Status. Matching is exact.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s < Pending || s > Disputed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition may ever leave s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Targets returns the statuses directly reachable from s.
func (s Status) Targets() []Status {
	targets := getTransitions()[s]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// CanTransitionTo reports whether s -> next is an edge of the lifecycle.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range getTransitions()[s] {
		if t == next {
			return true
		}
	}
	return false
}

// requires reports whether every path into s goes through milestone.
func (s Status) requires(milestone Status) bool {
	switch milestone {
	case Escrowed:
		return s == Escrowed || s == Delivered || s == Completed || s == Disputed
	case Delivered:
		return s == Delivered || s == Completed || s == Disputed
	default:
		return false
	}
}

// excludes reports whether no path into s goes through milestone.
// CANCELLED is reachable both from PENDING and from DISPUTED, so it neither
// requires nor excludes any milestone.
func (s Status) excludes(milestone Status) bool {
	switch milestone {
	case Escrowed:
		return s == Pending
	case Delivered:
		return s == Pending || s == Escrowed
	default:
		return true
	}
}
