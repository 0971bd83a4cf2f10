package clawlaunch

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fomo4claw/clawlaunch/auction"
	"github.com/fomo4claw/clawlaunch/config"
	"github.com/fomo4claw/clawlaunch/salt"
	"github.com/fomo4claw/clawlaunch/schema"
)

const DefaultWebsite = "https://fomo4claw.xyz"

// prepareLaunch assembles the full on-chain payload for one validated
// request. Pure apart from the chain-state read and the salt search; the
// same request against the same block yields the same params (modulo a
// random fallback salt).
func (s *ClawLaunch) prepareLaunch(req *schema.LaunchRequest, currency common.Address, durationBlocks uint64) (schema.LaunchParams, salt.Result, error) {
	if durationBlocks == 0 {
		durationBlocks = s.config.AuctionDurationBlocks()
	}
	state, err := s.chainState()
	if err != nil {
		return schema.LaunchParams{}, salt.Result{}, err
	}

	startBlock := state.CurrentBlock
	endBlock := startBlock + durationBlocks

	// Post-auction offsets hang off the auction end so the contract ordering
	// auctionEnd < airdropUnlock < migration < sweep holds for any duration.
	airdropUnlockBlock := endBlock + auction.AirdropUnlockDelayBlocks
	migrationBlock := endBlock + auction.MigrationDelayBlocks
	sweepBlock := endBlock + auction.SweepDelayBlocks

	wallet := common.HexToAddress(req.Wallet)
	auctionParams, err := auction.Build(
		currency, s.chain.LiquidityLauncher, wallet,
		startBlock, durationBlocks, s.config.FloorPrice(),
	)
	if err != nil {
		return schema.LaunchParams{}, salt.Result{}, err
	}

	saltRes := s.searchSalt(req, wallet, state)

	params := schema.LaunchParams{
		Name:   req.Name,
		Symbol: req.Symbol,
		TokenMetadata: schema.TokenMetadata{
			Description: req.Description,
			Website:     orDefault(req.Website, DefaultWebsite),
			Image:       req.Image,
		},
		VestingBeneficiary: wallet,
		VestingStart:       time.Now().Unix(),
		AuctionParams:      auctionParams,
		Salt:               saltRes.Salt.Bytes32(),
		MigrationBlock:     migrationBlock,
		SweepBlock:         sweepBlock,
		Currency:           currency,
		AirdropUnlockBlock: airdropUnlockBlock,
	}
	return params, saltRes, nil
}

// searchSalt runs the mining engine when the chain supports it, otherwise
// degrades straight to a random salt. Never fails: a launch proceeds with a
// non-mined salt and the caller surfaces the reason.
func (s *ClawLaunch) searchSalt(req *schema.LaunchRequest, wallet common.Address, state schema.ChainState) salt.Result {
	mineReq := salt.MineRequest{
		AgentAddress:    wallet,
		LauncherAddress: s.chain.LiquidityLauncher,
		FactoryAddress:  s.chain.StrategyFactory,
		ChainID:         s.chain.ChainID,
		TokenName:       req.Name,
		TokenSymbol:     req.Symbol,
		Currency:        s.currency.Hex(),
		CurrentBlock:    state.CurrentBlock,
	}

	engine := s.saltEngine
	if !config.MiningSupported(s.chain.ChainID) {
		engine = salt.NewEngineWithSources(salt.RandomSource{})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	if config.MiningSupported(s.chain.ChainID) {
		// the factory nonce feeds the fee splitter address prediction
		nonce, err := s.ethCli.NonceAt(ctx, s.chain.StrategyFactory, nil)
		if err != nil {
			log.Warn("factory nonce lookup failed", "factory", s.chain.StrategyFactory.Hex(), "err", err)
		} else {
			mineReq.Nonce = nonce
		}
	}

	res, err := engine.Search(ctx, mineReq)
	if err != nil {
		// unreachable with RandomSource terminating the chain, kept for
		// custom source sets
		res = salt.Result{Reason: err.Error()}
	}
	metricSaltMined(res.Mined)
	if !res.Mined {
		log.Warn("salt mining degraded to random", "symbol", req.Symbol, "reason", res.Reason)
	}
	return res
}

func (s *ClawLaunch) chainState() (schema.ChainState, error) {
	s.chainLock.RLock()
	state := s.chainSt
	s.chainLock.RUnlock()
	if state.CurrentBlock != 0 {
		return state, nil
	}
	return s.refreshChainState()
}

func (s *ClawLaunch) refreshChainState() (schema.ChainState, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	block, err := s.ethCli.BlockNumber(ctx)
	if err != nil {
		return schema.ChainState{}, fmt.Errorf("fetch block number: %w", err)
	}
	state := schema.ChainState{ChainID: s.chain.ChainID, CurrentBlock: block}
	s.chainLock.Lock()
	s.chainSt = state
	s.chainLock.Unlock()
	metricCurrentBlock(block)
	return state, nil
}

func toRespLaunchParams(p schema.LaunchParams) schema.RespLaunchParams {
	return schema.RespLaunchParams{
		Name:               p.Name,
		Symbol:             p.Symbol,
		TokenMetadata:      p.TokenMetadata,
		VestingBeneficiary: p.VestingBeneficiary.Hex(),
		VestingStart:       p.VestingStart,
		AuctionParams:      "0x" + hex.EncodeToString(p.AuctionParams),
		Salt:               "0x" + hex.EncodeToString(p.Salt[:]),
		MigrationBlock:     p.MigrationBlock,
		SweepBlock:         p.SweepBlock,
		Currency:           p.Currency.Hex(),
		AirdropUnlockBlock: p.AirdropUnlockBlock,
	}
}

func orDefault(val, def string) string {
	if val == "" {
		return def
	}
	return val
}
