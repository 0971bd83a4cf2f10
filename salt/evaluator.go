package salt

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// AllHookMask covers every hook flag bit in the low 14 bits of an address.
var AllHookMask = common.HexToAddress("0x0000000000000000000000000000000000003fff")

// DefaultHookMask requires only the before-swap flag.
var DefaultHookMask = common.HexToAddress("0x0000000000000000000000000000000000002000")

// wrapSalt is keccak256(abi.encode(sender, salt)): a 32-byte left-padded
// address followed by the 32-byte salt.
func wrapSalt(sender common.Address, salt [32]byte) (out [32]byte) {
	var encoded [64]byte
	copy(encoded[12:32], sender.Bytes())
	copy(encoded[32:], salt[:])
	copy(out[:], crypto.Keccak256(encoded[:]))
	return
}

// HookAddress derives the strategy address a salt deploys to. The launcher
// contract wraps the caller-supplied salt twice before the factory's CREATE2,
// so the same wrapping must be reproduced bit-for-bit here.
func HookAddress(salt Salt, ctx Context) common.Address {
	inner := wrapSalt(ctx.Launcher, salt)
	outer := wrapSalt(ctx.LiquidityLauncher, inner)

	// keccak256(0xff ++ deployer ++ salt ++ initCodeHash)[12:]
	var preimage [85]byte
	preimage[0] = 0xff
	copy(preimage[1:21], ctx.StrategyFactory.Bytes())
	copy(preimage[21:53], outer[:])
	copy(preimage[53:], ctx.InitCodeHash[:])
	return common.BytesToAddress(crypto.Keccak256(preimage[:])[12:])
}

// Satisfies reports whether the address a salt derives to carries exactly the
// required hook flag bits. Pure and deterministic.
func Satisfies(salt Salt, ctx Context) bool {
	addr := HookAddress(salt, ctx)
	return maskBits(addr)&maskBits(AllHookMask) == maskBits(ctx.HookMask)
}

// maskBits extracts the low 16 bits of an address as an integer.
func maskBits(addr common.Address) uint16 {
	return uint16(addr[18])<<8 | uint16(addr[19])
}
