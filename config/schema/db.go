package schema

// Param holds the operator-tunable launch knobs. One row; edits take effect
// on the next refresh cycle without a restart.
type Param struct {
	ID                    uint   `gorm:"primarykey"`
	AuctionDurationBlocks uint64 // 0 means package default (one week)
	FloorMcapEth          string // starting market cap in ETH, decimal string
	RateLimitHours        int    // accepted launches per wallet window
	ScanBatchSize         int    // mentions fetched per scan cycle
}

type IpRateWhitelist struct {
	OriginOrIP  string // e.g "188.0.2.2"
	Available   bool   `gorm:"index:idx3"` // true means effective
	Description string
}
