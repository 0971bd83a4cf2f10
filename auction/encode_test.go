package auction

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	sched, err := BuildSchedule(300)
	assert.NoError(t, err)
	stepsData, err := sched.Pack()
	assert.NoError(t, err)

	p := Params{
		Currency:        common.HexToAddress("0xfFf9976782d46CC05630D1f6eBAb18b2324d6B14"),
		TokensRecipient: common.HexToAddress("0x00000008412db3394C91A5CbD01635c6d140637C"),
		FundsRecipient:  common.HexToAddress("0x742d35Cc6634C0532925a3b844Bc9e7595f2bD12"),
		StartBlock:      19_000_000,
		EndBlock:        19_000_300,
		ClaimBlock:      19_000_310,
		TickSpacing:     DefaultTickSpacing(),
		FloorPrice:      DefaultFloorPrice(),
		RequiredRaise:   big.NewInt(0),
		StepsData:       stepsData,
	}
	data, err := p.Encode()
	assert.NoError(t, err)

	got, err := Decode(data)
	assert.NoError(t, err)
	assert.Equal(t, p.Currency, got.Currency)
	assert.Equal(t, p.TokensRecipient, got.TokensRecipient)
	assert.Equal(t, p.FundsRecipient, got.FundsRecipient)
	assert.Equal(t, p.StartBlock, got.StartBlock)
	assert.Equal(t, p.EndBlock, got.EndBlock)
	assert.Equal(t, p.ClaimBlock, got.ClaimBlock)
	assert.Equal(t, 0, p.TickSpacing.Cmp(got.TickSpacing))
	assert.Equal(t, common.Address{}, got.ValidationHook)
	assert.Equal(t, 0, p.FloorPrice.Cmp(got.FloorPrice))
	assert.Equal(t, 0, got.RequiredRaise.Sign())
	assert.Equal(t, p.StepsData, got.StepsData)

	// and the embedded schedule still satisfies the invariants
	gotSched, err := UnpackSteps(got.StepsData)
	assert.NoError(t, err)
	assert.Equal(t, uint64(MPS), gotSched.TotalRate())
	assert.Equal(t, uint64(300), gotSched.TotalSpan())
}

func TestBuildEncodesWholeAuction(t *testing.T) {
	currency := common.Address{} // native ETH
	launcher := common.HexToAddress("0x00000008412db3394C91A5CbD01635c6d140637C")
	owner := common.HexToAddress("0x742d35Cc6634C0532925a3b844Bc9e7595f2bD12")

	data, err := Build(currency, launcher, owner, 100, DefaultDurationBlocks, nil)
	assert.NoError(t, err)

	got, err := Decode(data)
	assert.NoError(t, err)
	assert.Equal(t, uint64(100), got.StartBlock)
	assert.Equal(t, uint64(100+DefaultDurationBlocks), got.EndBlock)
	assert.Equal(t, uint64(100+DefaultDurationBlocks+ClaimDelayBlocks), got.ClaimBlock)
	assert.Equal(t, launcher, got.TokensRecipient)
	assert.Equal(t, owner, got.FundsRecipient)
	assert.Equal(t, 0, DefaultFloorPrice().Cmp(got.FloorPrice))
}

func TestDefaultFloorPrice(t *testing.T) {
	// (33 * 2^96) / 1e9
	want := new(big.Int).Mul(big.NewInt(33), new(big.Int).Lsh(big.NewInt(1), 96))
	want.Div(want, big.NewInt(1_000_000_000))
	assert.Equal(t, 0, want.Cmp(DefaultFloorPrice()))
}
