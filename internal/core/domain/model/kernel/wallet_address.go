package kernel

import (
	"errors"
	"fmt"
	"strings"

	"otcdesk/internal/pkg/errs"
	"otcdesk/internal/pkg/guard"

	"github.com/ethereum/go-ethereum/common"
)

var ErrWalletAddressIsNotConstructed = errors.New(
	"WalletAddress must be created via NewWalletAddress constructor",
)

// WalletAddress is an EVM account address stored in lower case, which is
// how users are keyed in the database.
type WalletAddress struct {
	value string
	guard guard.ConstructorGuard
}

// NewWalletAddress accepts "0x" followed by 40 hex characters in any case.
func NewWalletAddress(s string) (WalletAddress, error) {
	if s == "" {
		return WalletAddress{}, errs.NewValueIsRequiredError("wallet_address")
	}
	// common.IsHexAddress also admits a bare or 0X prefix; the API does not.
	if !strings.HasPrefix(s, "0x") || !common.IsHexAddress(s) {
		return WalletAddress{}, errs.NewValueIsInvalidErrorWithCause(
			"wallet_address",
			fmt.Errorf("%q is not a 0x-prefixed 20 byte hex address", s),
		)
	}
	return WalletAddress{value: strings.ToLower(s), guard: guard.NewConstructorGuard()}, nil
}

func (a WalletAddress) String() string {
	return a.value
}

// Checksum returns the EIP-55 form, used only for display.
func (a WalletAddress) Checksum() string {
	return common.HexToAddress(a.value).Hex()
}

func (a WalletAddress) IsEqual(other WalletAddress) bool {
	return a.value == other.value
}

func (a WalletAddress) Validate() error {
	return a.guard.Validate(ErrWalletAddressIsNotConstructed)
}
