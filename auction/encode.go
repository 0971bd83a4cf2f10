package auction

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Q96 is the fixed-point scale (2^96) the strategy prices in.
var Q96 = new(big.Int).Lsh(big.NewInt(1), 96)

const (
	// DefaultDurationBlocks is one week at ~12s blocks.
	DefaultDurationBlocks = 50_400

	// ClaimDelayBlocks separates auction end from claim start.
	ClaimDelayBlocks = 10

	// Block offsets after auction end. Ordering airdrop < migration < sweep
	// is load bearing: the launch contract enforces
	// auctionEnd < airdropUnlock < migrationBlock < sweepBlock.
	AirdropUnlockDelayBlocks = 50
	MigrationDelayBlocks     = 500
	SweepDelayBlocks         = 1000
)

// DefaultFloorPrice prices a 1e9 supply at a 33 ETH market cap:
// (33 * Q96) / 1e9.
func DefaultFloorPrice() *big.Int {
	p := new(big.Int).Mul(big.NewInt(33), Q96)
	return p.Div(p, big.NewInt(1_000_000_000))
}

// DefaultTickSpacing is 100 * Q96.
func DefaultTickSpacing() *big.Int {
	return new(big.Int).Mul(big.NewInt(100), Q96)
}

// Params is the full auction parameter tuple in wire order.
type Params struct {
	Currency        common.Address
	TokensRecipient common.Address // unsold tokens, the launcher contract
	FundsRecipient  common.Address // raised currency, the token owner
	StartBlock      uint64
	EndBlock        uint64
	ClaimBlock      uint64
	TickSpacing     *big.Int
	ValidationHook  common.Address
	FloorPrice      *big.Int
	RequiredRaise   *big.Int // uint128, zero for LBP launches
	StepsData       []byte
}

var paramArgs abi.Arguments

func init() {
	mustType := func(t string) abi.Type {
		typ, err := abi.NewType(t, "", nil)
		if err != nil {
			panic(err)
		}
		return typ
	}
	addrT := mustType("address")
	u64T := mustType("uint64")
	paramArgs = abi.Arguments{
		{Name: "currency", Type: addrT},
		{Name: "tokensRecipient", Type: addrT},
		{Name: "fundsRecipient", Type: addrT},
		{Name: "startBlock", Type: u64T},
		{Name: "endBlock", Type: u64T},
		{Name: "claimBlock", Type: u64T},
		{Name: "tickSpacing", Type: mustType("uint256")},
		{Name: "validationHook", Type: addrT},
		{Name: "floorPrice", Type: mustType("uint256")},
		{Name: "requiredCurrencyRaised", Type: mustType("uint128")},
		{Name: "auctionStepsData", Type: mustType("bytes")},
	}
}

// Encode ABI-encodes the parameter tuple in the fixed wire order.
func (p Params) Encode() ([]byte, error) {
	tickSpacing := p.TickSpacing
	if tickSpacing == nil {
		tickSpacing = DefaultTickSpacing()
	}
	floorPrice := p.FloorPrice
	if floorPrice == nil {
		floorPrice = DefaultFloorPrice()
	}
	requiredRaise := p.RequiredRaise
	if requiredRaise == nil {
		requiredRaise = big.NewInt(0)
	}
	return paramArgs.Pack(
		p.Currency,
		p.TokensRecipient,
		p.FundsRecipient,
		p.StartBlock,
		p.EndBlock,
		p.ClaimBlock,
		tickSpacing,
		p.ValidationHook,
		floorPrice,
		requiredRaise,
		p.StepsData,
	)
}

// Decode is the inverse of Encode; used to verify the round-trip property.
func Decode(data []byte) (Params, error) {
	vals, err := paramArgs.Unpack(data)
	if err != nil {
		return Params{}, err
	}
	if len(vals) != 11 {
		return Params{}, fmt.Errorf("expected 11 fields, got %d", len(vals))
	}
	return Params{
		Currency:        vals[0].(common.Address),
		TokensRecipient: vals[1].(common.Address),
		FundsRecipient:  vals[2].(common.Address),
		StartBlock:      vals[3].(uint64),
		EndBlock:        vals[4].(uint64),
		ClaimBlock:      vals[5].(uint64),
		TickSpacing:     vals[6].(*big.Int),
		ValidationHook:  vals[7].(common.Address),
		FloorPrice:      vals[8].(*big.Int),
		RequiredRaise:   vals[9].(*big.Int),
		StepsData:       vals[10].([]byte),
	}, nil
}

// Build assembles and encodes the default full-range LBP auction for one
// launch: schedule across durationBlocks starting at startBlock, unsold
// tokens back to the launcher, raised funds to the owner.
func Build(currency, launcher, owner common.Address, startBlock, durationBlocks uint64, floorPrice *big.Int) ([]byte, error) {
	sched, err := BuildSchedule(durationBlocks)
	if err != nil {
		return nil, err
	}
	stepsData, err := sched.Pack()
	if err != nil {
		return nil, err
	}
	endBlock := startBlock + durationBlocks
	p := Params{
		Currency:        currency,
		TokensRecipient: launcher,
		FundsRecipient:  owner,
		StartBlock:      startBlock,
		EndBlock:        endBlock,
		ClaimBlock:      endBlock + ClaimDelayBlocks,
		FloorPrice:      floorPrice,
		StepsData:       stepsData,
	}
	return p.Encode()
}
