package clawlaunch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/fomo4claw/clawlaunch/schema"
	"github.com/stretchr/testify/assert"
)

// fakeRPC serves canned JSON-RPC results keyed by method name; unknown
// methods answer null.
func fakeRPC(t *testing.T, results map[string]string) *ethclient.Client {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		res, ok := results[req.Method]
		if !ok {
			res = "null"
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, req.ID, res)
	}))
	t.Cleanup(srv.Close)

	cli, err := ethclient.Dial(srv.URL)
	assert.NoError(t, err)
	t.Cleanup(cli.Close)
	return cli
}

func TestWaitReceipt(t *testing.T) {
	txHash := common.HexToHash("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	receiptJSON := fmt.Sprintf(`{
		"transactionHash": "%s",
		"transactionIndex": "0x0",
		"blockHash": "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		"blockNumber": "0x64",
		"gasUsed": "0x5208",
		"cumulativeGasUsed": "0x5208",
		"effectiveGasPrice": "0x1",
		"contractAddress": null,
		"logs": [],
		"logsBloom": "0x%s",
		"status": "0x1",
		"type": "0x2"
	}`, txHash.Hex(), strings.Repeat("0", 512))

	s := &ClawLaunch{ethCli: fakeRPC(t, map[string]string{
		"eth_getTransactionReceipt": receiptJSON,
	})}

	receipt, err := s.waitReceipt(context.Background(), txHash)
	assert.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
	assert.Equal(t, txHash, receipt.TxHash)
}

func TestWaitReceiptContextExpiry(t *testing.T) {
	// receipt never appears: the poll must end with the context
	s := &ClawLaunch{ethCli: fakeRPC(t, nil)}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := s.waitReceipt(ctx, common.HexToHash("0xcc"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPackLaunchCalldata(t *testing.T) {
	params := schema.LaunchParams{
		Name:   "Molty Coin",
		Symbol: "MOLTY",
		TokenMetadata: schema.TokenMetadata{
			Description: "The official Molty token",
			Website:     DefaultWebsite,
			Image:       "https://iili.io/xxxxx.jpg",
		},
		VestingBeneficiary: common.HexToAddress("0x742d35cc6634c0532925a3b844bc9e7595f2bd12"),
		VestingStart:       1766000000,
		AuctionParams:      []byte{0x01, 0x02},
		Salt:               [32]byte{0xaa},
		MigrationBlock:     1500,
		SweepBlock:         2000,
		AirdropUnlockBlock: 1050,
	}

	calldata, err := packLaunchCalldata(params)
	assert.NoError(t, err)
	selector := launcherABI.Methods["launch"].ID
	assert.Equal(t, selector, calldata[:4])

	vals, err := launcherABI.Methods["launch"].Inputs.Unpack(calldata[4:])
	assert.NoError(t, err)
	assert.Len(t, vals, 1)
}

func TestTokenFromReceipt(t *testing.T) {
	launcher := common.HexToAddress("0x00000008412db3394C91A5CbD01635c6d140637C")
	token := common.HexToAddress("0x1111111111111111111111111111111111111111")
	topic := launcherABI.Events["TokenLaunched"].ID

	receipt := &types.Receipt{
		Logs: []*types.Log{
			{
				// noise from another contract
				Address: common.HexToAddress("0x2222222222222222222222222222222222222222"),
				Topics:  []common.Hash{topic, common.BytesToHash(token.Bytes())},
			},
			{
				Address: launcher,
				Topics:  []common.Hash{topic, common.BytesToHash(token.Bytes()), common.BytesToHash(launcher.Bytes())},
			},
		},
	}
	assert.Equal(t, token, tokenFromReceipt(receipt, launcher))

	empty := &types.Receipt{}
	assert.Equal(t, common.Address{}, tokenFromReceipt(empty, launcher))
}
