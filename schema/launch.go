package schema

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	LaunchStatusPending    = "pending"
	LaunchStatusProcessing = "processing"
	LaunchStatusLaunched   = "launched"
	LaunchStatusFailed     = "failed"
)

const (
	MaxNameLength        = 50
	MaxSymbolLength      = 10
	MaxDescriptionLength = 500
)

// Mention is one candidate launch event pulled from the mention source.
type Mention struct {
	ID             string    `json:"id"`
	Text           string    `json:"text"`
	AuthorID       string    `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	CreatedAt      time.Time `json:"createdAt"`
	URL            string    `json:"url"`
}

// LaunchRequest is the validated launch intent parsed from a mention or an
// API payload. Immutable once parsed.
type LaunchRequest struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"` // normalized upper case
	Wallet      string `json:"wallet"` // 0x-prefixed, normalized lower case
	Description string `json:"description"`
	Image       string `json:"image"`
	Website     string `json:"website,omitempty"`
	Twitter     string `json:"twitter,omitempty"`
}

// LaunchRecord is the persisted lifecycle object, one per source tweet id.
type LaunchRecord struct {
	TweetID      string     `gorm:"primarykey" json:"tweetId"`
	TweetURL     string     `json:"tweetUrl"`
	AuthorHandle string     `json:"authorHandle"`
	AuthorID     string     `json:"authorId"`
	TokenAddress string     `json:"tokenAddress"` // empty until confirmed
	Symbol       string     `gorm:"index" json:"symbol"`
	Name         string     `json:"name"`
	Wallet       string     `gorm:"index" json:"wallet"`
	LaunchedAt   *time.Time `json:"launchedAt"`
	TxHash       string     `json:"txHash"`
	Status       string     `gorm:"index" json:"status"`
	ErrMsg       string     `json:"error,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// TokenMetadata is the off-chain metadata blob attached to a launched token.
type TokenMetadata struct {
	Description string `json:"description"`
	Website     string `json:"website"`
	Image       string `json:"image"`
}

// LaunchParams is the full on-chain launch payload. Immutable after build,
// except Salt which is replaced exactly once when mining degrades to random.
type LaunchParams struct {
	Name               string         `json:"name"`
	Symbol             string         `json:"symbol"`
	TokenMetadata      TokenMetadata  `json:"tokenMetadata"`
	VestingBeneficiary common.Address `json:"vestingBeneficiary"`
	VestingStart       int64          `json:"vestingStart"`
	AuctionParams      []byte         `json:"auctionParams"`
	Salt               [32]byte       `json:"salt"`
	MigrationBlock     uint64         `json:"migrationBlock"`
	SweepBlock         uint64         `json:"sweepBlock"`
	Currency           common.Address `json:"currency"`
	AirdropUnlockBlock uint64         `json:"airdropUnlockBlock"`
}

// ChainState is the chain observation a launch is built against.
type ChainState struct {
	ChainID      int64
	CurrentBlock uint64
}
