package clawlaunch

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/fomo4claw/clawlaunch/schema"
)

const launcherABIJSON = `[
	{
		"inputs": [
			{
				"components": [
					{"name": "name", "type": "string"},
					{"name": "symbol", "type": "string"},
					{"name": "tokenMetadata", "type": "bytes"},
					{"name": "vestingBeneficiary", "type": "address"},
					{"name": "vestingStart", "type": "uint64"},
					{"name": "auctionParams", "type": "bytes"},
					{"name": "salt", "type": "bytes32"},
					{"name": "migrationBlock", "type": "uint64"},
					{"name": "sweepBlock", "type": "uint64"},
					{"name": "currency", "type": "address"},
					{"name": "airdropUnlockBlock", "type": "uint64"}
				],
				"name": "params",
				"type": "tuple"
			}
		],
		"name": "launch",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "token", "type": "address"},
			{"indexed": true, "name": "strategy", "type": "address"},
			{"indexed": false, "name": "salt", "type": "bytes32"}
		],
		"name": "TokenLaunched",
		"type": "event"
	}
]`

var launcherABI abi.ABI

func init() {
	var err error
	launcherABI, err = abi.JSON(strings.NewReader(launcherABIJSON))
	if err != nil {
		panic(err)
	}
}

// launchTuple mirrors the launch(params) calldata layout.
type launchTuple struct {
	Name               string
	Symbol             string
	TokenMetadata      []byte
	VestingBeneficiary common.Address
	VestingStart       uint64
	AuctionParams      []byte
	Salt               [32]byte
	MigrationBlock     uint64
	SweepBlock         uint64
	Currency           common.Address
	AirdropUnlockBlock uint64
}

const waitMinedTimeout = 5 * time.Minute

// executeLaunch submits the launch transaction and waits for confirmation,
// driving the record through processing -> launched/failed. Terminal either
// way; the tweet is never retried.
func (s *ClawLaunch) executeLaunch(rec schema.LaunchRecord, params schema.LaunchParams) error {
	calldata, err := packLaunchCalldata(params)
	if err != nil {
		return s.failLaunch(rec, fmt.Errorf("%w: %v", schema.ErrSubmission, err))
	}

	txHash, err := s.wallet.SendTx(s.chain.LiquidityLauncher, big.NewInt(0), calldata, nil)
	if err != nil {
		return s.failLaunch(rec, fmt.Errorf("%w: %v", schema.ErrSubmission, err))
	}
	log.Info("launch tx submitted", "tweetId", rec.TweetID, "symbol", rec.Symbol, "txHash", txHash)

	ctx, cancel := context.WithTimeout(context.Background(), waitMinedTimeout)
	defer cancel()
	receipt, err := s.waitReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		return s.failLaunch(rec, fmt.Errorf("%w: %v", schema.ErrConfirmation, err))
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return s.failLaunch(rec, fmt.Errorf("%w: tx %s reverted", schema.ErrConfirmation, txHash))
	}

	tokenAddr := tokenFromReceipt(receipt, s.chain.LiquidityLauncher)
	if tokenAddr == (common.Address{}) {
		log.Warn("no TokenLaunched event in receipt", "txHash", txHash)
	}

	now := time.Now()
	if err := s.wdb.MarkLaunched(rec.TweetID, tokenAddr.Hex(), txHash, now); err != nil {
		log.Error("mark launched failed", "tweetId", rec.TweetID, "err", err)
	}
	rec.Status = schema.LaunchStatusLaunched
	rec.TokenAddress = tokenAddr.Hex()
	rec.TxHash = txHash
	rec.LaunchedAt = &now
	metricLaunch(schema.LaunchStatusLaunched)
	s.publishLaunchEvent(rec)

	log.Info("token launched", "symbol", rec.Symbol, "token", tokenAddr.Hex(), "txHash", txHash)
	return nil
}

const receiptPollInterval = 3 * time.Second

// waitReceipt polls for the receipt until the context expires. The wallet
// returns only a hash string, so confirmation is a plain receipt poll.
func (s *ClawLaunch) waitReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()
	for {
		receipt, err := s.ethCli.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if err != ethereum.NotFound {
			log.Debug("fetch receipt failed", "txHash", txHash.Hex(), "err", err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// failLaunch records the terminal failure and passes the error back for the
// batch counters.
func (s *ClawLaunch) failLaunch(rec schema.LaunchRecord, cause error) error {
	if err := s.wdb.UpdateLaunchStatus(rec.TweetID, schema.LaunchStatusFailed, cause.Error()); err != nil {
		log.Error("mark failed failed", "tweetId", rec.TweetID, "err", err)
	}
	rec.Status = schema.LaunchStatusFailed
	rec.ErrMsg = cause.Error()
	metricLaunch(schema.LaunchStatusFailed)
	s.publishLaunchEvent(rec)
	log.Warn("launch failed", "tweetId", rec.TweetID, "symbol", rec.Symbol, "err", cause)
	return cause
}

func packLaunchCalldata(params schema.LaunchParams) ([]byte, error) {
	metadata, err := json.Marshal(params.TokenMetadata)
	if err != nil {
		return nil, err
	}
	return launcherABI.Pack("launch", launchTuple{
		Name:               params.Name,
		Symbol:             params.Symbol,
		TokenMetadata:      metadata,
		VestingBeneficiary: params.VestingBeneficiary,
		VestingStart:       uint64(params.VestingStart),
		AuctionParams:      params.AuctionParams,
		Salt:               params.Salt,
		MigrationBlock:     params.MigrationBlock,
		SweepBlock:         params.SweepBlock,
		Currency:           params.Currency,
		AirdropUnlockBlock: params.AirdropUnlockBlock,
	})
}

// tokenFromReceipt pulls the token address out of the launcher's
// TokenLaunched event. Zero address when the event is absent.
func tokenFromReceipt(receipt *types.Receipt, launcher common.Address) common.Address {
	topic := launcherABI.Events["TokenLaunched"].ID
	for _, lg := range receipt.Logs {
		if lg.Address != launcher || len(lg.Topics) < 2 {
			continue
		}
		if lg.Topics[0] == topic {
			return common.BytesToAddress(lg.Topics[1].Bytes())
		}
	}
	return common.Address{}
}
