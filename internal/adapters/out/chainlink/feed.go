// Package chainlink reads USD quotes from Chainlink aggregator contracts.
package chainlink

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/core/ports"
	"otcdesk/internal/pkg/errs"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// aggregatorABI is the subset of AggregatorV3Interface the feed calls.
const aggregatorABI = `[
	{"inputs":[],"name":"decimals","outputs":[{"internalType":"uint8","name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"latestRoundData","outputs":[
		{"internalType":"uint80","name":"roundId","type":"uint80"},
		{"internalType":"int256","name":"answer","type":"int256"},
		{"internalType":"uint256","name":"startedAt","type":"uint256"},
		{"internalType":"uint256","name":"updatedAt","type":"uint256"},
		{"internalType":"uint80","name":"answeredInRound","type":"uint80"}
	],"stateMutability":"view","type":"function"}
]`

var (
	ErrFeedNotConfigured = errors.New("price feed is not configured")
	ErrNonPositiveAnswer = errors.New("aggregator answer is not positive")
)

var _ ports.PriceFeed = &Feed{}

// Feed implements ports.PriceFeed over an eth_call capable client.
type Feed struct {
	caller ethereum.ContractCaller
	feeds  map[kernel.Asset]common.Address
	abi    abi.ABI
}

// NewFeed binds assets to aggregator addresses. An *ethclient.Client satisfies caller.
func NewFeed(caller ethereum.ContractCaller, feeds map[kernel.Asset]common.Address) (*Feed, error) {
	if caller == nil {
		return nil, errs.NewValueIsRequiredError("caller")
	}
	parsed, err := abi.JSON(strings.NewReader(aggregatorABI))
	if err != nil {
		return nil, fmt.Errorf("parse aggregator abi: %w", err)
	}

	bound := make(map[kernel.Asset]common.Address, len(feeds))
	for asset, addr := range feeds {
		if err := asset.Validate(); err != nil {
			return nil, err
		}
		if addr == (common.Address{}) {
			continue
		}
		bound[asset] = addr
	}

	return &Feed{caller: caller, feeds: bound, abi: parsed}, nil
}

func (f *Feed) LatestPrice(ctx context.Context, asset kernel.Asset) (ports.Price, error) {
	addr, ok := f.feeds[asset]
	if !ok {
		return ports.Price{}, fmt.Errorf("%w: %s", ErrFeedNotConfigured, asset)
	}

	decOut, err := f.call(ctx, addr, "decimals")
	if err != nil {
		return ports.Price{}, err
	}
	decimals, ok := decOut[0].(uint8)
	if !ok {
		return ports.Price{}, fmt.Errorf("decimals: unexpected type %T", decOut[0])
	}

	roundOut, err := f.call(ctx, addr, "latestRoundData")
	if err != nil {
		return ports.Price{}, err
	}
	answer, ok := roundOut[1].(*big.Int)
	if !ok {
		return ports.Price{}, fmt.Errorf("latestRoundData answer: unexpected type %T", roundOut[1])
	}
	updatedAt, ok := roundOut[3].(*big.Int)
	if !ok {
		return ports.Price{}, fmt.Errorf("latestRoundData updatedAt: unexpected type %T", roundOut[3])
	}
	if answer.Sign() <= 0 {
		return ports.Price{}, fmt.Errorf("%w: %s answered %s", ErrNonPositiveAnswer, asset, answer)
	}

	return ports.Price{
		Asset:     asset,
		USD:       decimal.NewFromBigInt(answer, -int32(decimals)),
		UpdatedAt: time.Unix(updatedAt.Int64(), 0).UTC(),
	}, nil
}

func (f *Feed) call(ctx context.Context, addr common.Address, method string) ([]any, error) {
	data, err := f.abi.Pack(method)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	raw, err := f.caller.CallContract(ctx, ethereum.CallMsg{To: &addr, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s on %s: %w", method, addr.Hex(), err)
	}

	out, err := f.abi.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return out, nil
}
