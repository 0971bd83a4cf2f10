// Package salt finds CREATE2 salts whose resulting strategy address carries
// the hook flag bits the AMM checks before accepting the pool hook. Mining is
// CPU bound and runs outside the serving process; this package drives a
// remote mining service or local helper binaries and degrades to a random
// (non-mined) salt when neither is available.
package salt

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/inconshreveable/log15"
)

var log = log15.New("module", "salt")

// Salt is a CREATE2 salt.
type Salt [32]byte

func (s Salt) Hex() string {
	return "0x" + hex.EncodeToString(s[:])
}

func (s Salt) Bytes32() [32]byte {
	return s
}

// ParseSalt parses a 0x-prefixed 64-hex-char salt.
func ParseSalt(str string) (Salt, error) {
	str = strings.TrimPrefix(strings.TrimSpace(str), "0x")
	if len(str) != 64 {
		return Salt{}, errors.New("salt must be 32 bytes hex")
	}
	by, err := hex.DecodeString(str)
	if err != nil {
		return Salt{}, err
	}
	var s Salt
	copy(s[:], by)
	return s, nil
}

// Context is the fixed deployment context the predicate is evaluated
// against. Launcher is the msg.sender of the strategy deployment,
// LiquidityLauncher the outer wrapping deployer, StrategyFactory the CREATE2
// deployer. Name and symbol affect InitCodeHash upstream, so a mined salt is
// only valid for the exact token it was mined for.
type Context struct {
	Launcher          common.Address
	LiquidityLauncher common.Address
	StrategyFactory   common.Address
	InitCodeHash      [32]byte
	HookMask          common.Address
}

// MineRequest is the full mining context shipped to a mining backend.
// CurrentBlock and Nonce are optional; backends resolve them from the chain
// when absent.
type MineRequest struct {
	AgentAddress    common.Address `json:"agentAddress"`
	LauncherAddress common.Address `json:"launcherAddress"`
	FactoryAddress  common.Address `json:"factoryAddress"`
	ChainID         int64          `json:"chainId"`
	TokenName       string         `json:"tokenName"`
	TokenSymbol     string         `json:"tokenSymbol"`
	Currency        string         `json:"currency,omitempty"`
	CurrentBlock    uint64         `json:"currentBlock,omitempty"`
	Nonce           uint64         `json:"nonce,omitempty"`
}

// Result carries the found salt plus whether it actually was mined. A
// non-mined salt does NOT satisfy the hook predicate; consumers must not
// assume the bit-mask guarantee holds when Mined is false.
type Result struct {
	Salt   Salt
	Mined  bool
	Reason string // why mining degraded, empty when Mined
}
