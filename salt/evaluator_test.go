package salt

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func testCtx() Context {
	var initHash [32]byte
	copy(initHash[:], common.Hex2Bytes("8b1a944cf13a9a1c08facb2c9e98623ef3254d2ddb48113885c3e8e97fec8db9"))
	return Context{
		Launcher:          common.HexToAddress("0x000000000000000000000000000000000000dEaD"),
		LiquidityLauncher: common.HexToAddress("0x00000008412db3394C91A5CbD01635c6d140637C"),
		StrategyFactory:   common.HexToAddress("0x89Dd5691e53Ea95d19ED2AbdEdCf4cBbE50da1ff"),
		InitCodeHash:      initHash,
		HookMask:          DefaultHookMask,
	}
}

func TestHookAddressDeterministic(t *testing.T) {
	ctx := testCtx()
	s, err := ParseSalt("0x00000000000000000000000000000000000000000000000000000000000000ff")
	assert.NoError(t, err)

	a1 := HookAddress(s, ctx)
	a2 := HookAddress(s, ctx)
	assert.Equal(t, a1, a2)

	s2 := s
	s2[31] ^= 0x01
	assert.NotEqual(t, a1, HookAddress(s2, ctx))
}

func TestHookAddressDependsOnContext(t *testing.T) {
	ctx := testCtx()
	s, _ := ParseSalt("0x1111111111111111111111111111111111111111111111111111111111111111")

	base := HookAddress(s, ctx)

	other := ctx
	other.Launcher = common.HexToAddress("0x000000000000000000000000000000000000bEEF")
	assert.NotEqual(t, base, HookAddress(s, other))

	other = ctx
	other.InitCodeHash[0] ^= 0xff
	assert.NotEqual(t, base, HookAddress(s, other))
}

func TestSatisfiesMatchesDerivedBits(t *testing.T) {
	ctx := testCtx()
	s, _ := ParseSalt("0x2222222222222222222222222222222222222222222222222222222222222222")

	addr := HookAddress(s, ctx)
	// a mask equal to the derived address's own hook bits must always match
	var exact common.Address
	exact[18] = addr[18] & 0x3f
	exact[19] = addr[19]
	ctx.HookMask = exact
	assert.True(t, Satisfies(s, ctx))

	// flipping one required bit must break the exact match
	exact[19] ^= 0x01
	ctx.HookMask = exact
	assert.False(t, Satisfies(s, ctx))
}

func TestParseSalt(t *testing.T) {
	s, err := ParseSalt("0xabcdefabcdefabcdefabcdefabcdefabcdefabcdefabcdefabcdefabcdefabcd")
	assert.NoError(t, err)
	assert.Equal(t, "0xabcdefabcdefabcdefabcdefabcdefabcdefabcdefabcdefabcdefabcdefabcd", s.Hex())

	_, err = ParseSalt("0x1234")
	assert.Error(t, err)
	_, err = ParseSalt("zz")
	assert.Error(t, err)
}
