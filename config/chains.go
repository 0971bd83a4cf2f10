package config

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Chain is the per-network contract registry a launch runs against.
type Chain struct {
	ChainID           int64
	Name              string
	LiquidityLauncher common.Address
	StrategyFactory   common.Address // FullRangeLBPStrategy factory, CREATE2 deployer
	UERC20Factory     common.Address
	WETH              common.Address
	DefaultRPC        string
	ExplorerTxPrefix  string
}

// NativeETH (address zero) raises the auction in ETH.
var NativeETH = common.Address{}

var chains = map[int64]Chain{
	1: {
		ChainID:           1,
		Name:              "mainnet",
		LiquidityLauncher: common.HexToAddress("0x00000008412db3394C91A5CbD01635c6d140637C"),
		StrategyFactory:   common.HexToAddress("0x65aF3B62EE79763c704f04238080fBADD005B332"),
		WETH:              common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
		DefaultRPC:        "https://eth.llamarpc.com",
		ExplorerTxPrefix:  "https://etherscan.io/tx/",
	},
	11155111: {
		ChainID:           11155111,
		Name:              "sepolia",
		LiquidityLauncher: common.HexToAddress("0x00000008412db3394C91A5CbD01635c6d140637C"),
		StrategyFactory:   common.HexToAddress("0x89Dd5691e53Ea95d19ED2AbdEdCf4cBbE50da1ff"),
		UERC20Factory:     common.HexToAddress("0xD97d0c9FB20CF472D4d52bD8e0468A6C010ba448"),
		WETH:              common.HexToAddress("0xfFf9976782d46CC05630D1f6eBAb18b2324d6B14"),
		DefaultRPC:        "https://rpc.sepolia.org",
		ExplorerTxPrefix:  "https://sepolia.etherscan.io/tx/",
	},
	84532: {
		ChainID:           84532,
		Name:              "base-sepolia",
		LiquidityLauncher: common.HexToAddress("0x00000008412db3394C91A5CbD01635c6d140637C"),
		StrategyFactory:   common.HexToAddress("0xa3A236647c80BCD69CAD561ACf863c29981b6fbC"),
		UERC20Factory:     common.HexToAddress("0xD97d0c9FB20CF472D4d52bD8e0468A6C010ba448"),
		WETH:              common.HexToAddress("0x4200000000000000000000000000000000000006"),
		DefaultRPC:        "https://sepolia.base.org",
		ExplorerTxPrefix:  "https://sepolia.basescan.org/tx/",
	},
}

func ChainByID(chainID int64) (Chain, error) {
	ch, ok := chains[chainID]
	if !ok {
		return Chain{}, fmt.Errorf("unsupported chain id %d", chainID)
	}
	return ch, nil
}

// MiningSupported reports whether salt mining backends exist for the chain.
func MiningSupported(chainID int64) bool {
	return chainID == 11155111 || chainID == 84532
}
