package kernel

import (
	"errors"
	"fmt"
	"regexp"

	"otcdesk/internal/pkg/errs"
	"otcdesk/internal/pkg/guard"
)

// ErrTxHashIsNotConstructed is returned when a TxHash was not created via NewTxHash.
var ErrTxHashIsNotConstructed = errors.New("TxHash must be created via NewTxHash constructor")

// txHashPattern is matched exactly: no trimming, no prefix normalization.
var txHashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// TxHash is evidence that an on-chain action happened. Only its shape is
// checked; the chain is never consulted.
type TxHash struct {
	value string
	guard guard.ConstructorGuard
}

// IsTxHash reports whether s has the shape of a transaction hash.
func IsTxHash(s string) bool {
	return txHashPattern.MatchString(s)
}

// NewTxHash validates s and wraps it. The original casing is preserved.
func NewTxHash(s string) (TxHash, error) {
	if s == "" {
		return TxHash{}, errs.NewValueIsRequiredError("tx hash")
	}
	if !IsTxHash(s) {
		return TxHash{}, errs.NewValueIsInvalidErrorWithCause(
			"tx hash",
			fmt.Errorf("%q is not 0x followed by 64 hex characters", s),
		)
	}
	return TxHash{value: s, guard: guard.NewConstructorGuard()}, nil
}

// MustNewTxHash panics on invalid input. Intended for tests and constants.
func MustNewTxHash(s string) TxHash {
	h, err := NewTxHash(s)
	if err != nil {
		panic(err)
	}
	return h
}

func (h TxHash) String() string {
	return h.value
}

func (h TxHash) IsEqual(other TxHash) bool {
	return h.value == other.value
}

func (h TxHash) Validate() error {
	return h.guard.Validate(ErrTxHashIsNotConstructed)
}
