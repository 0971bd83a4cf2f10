package schema

// PrepareLaunchReq is the body of POST /launch/prepare.
// AgentAddress is the retired identity-lookup payload; requests carrying it
// without TokenDetails are rejected with a migration error.
type PrepareLaunchReq struct {
	TokenDetails *LaunchRequest `json:"tokenDetails"`
	AgentAddress string         `json:"agentAddress,omitempty"`

	ChainID        int64  `json:"chainId,omitempty"`
	Currency       string `json:"currency,omitempty"`
	DurationBlocks uint64 `json:"auctionDurationBlocks,omitempty"`
}

type RespPrepareLaunch struct {
	LaunchParams    RespLaunchParams `json:"launchParams"`
	ChainID         int64            `json:"chainId"`
	LauncherAddress string           `json:"launcherAddress"`
	SaltMined       bool             `json:"saltMined"`
	Note            string           `json:"note,omitempty"`
}

// RespLaunchParams is the JSON view of LaunchParams with hex-encoded binaries.
type RespLaunchParams struct {
	Name               string        `json:"name"`
	Symbol             string        `json:"symbol"`
	TokenMetadata      TokenMetadata `json:"tokenMetadata"`
	VestingBeneficiary string        `json:"vestingBeneficiary"`
	VestingStart       int64         `json:"vestingStart"`
	AuctionParams      string        `json:"auctionParams"` // 0x hex
	Salt               string        `json:"salt"`          // 0x hex bytes32
	MigrationBlock     uint64        `json:"migrationBlock"`
	SweepBlock         uint64        `json:"sweepBlock"`
	Currency           string        `json:"currency"`
	AirdropUnlockBlock uint64        `json:"airdropUnlockBlock"`
}

// RespScan is the result of one scan cycle. The endpoint returns it with
// status 200 even when individual mentions failed.
type RespScan struct {
	MentionsFound int      `json:"mentionsFound"`
	Processed     int      `json:"processed"`
	Launched      int      `json:"launched"`
	Failed        int      `json:"failed"`
	Skipped       int      `json:"skipped"`
	Errors        []string `json:"errors"`
}

type RespInfo struct {
	ChainID         int64  `json:"chainId"`
	LauncherAddress string `json:"launcherAddress"`
	BotHandle       string `json:"botHandle"`
}

type RespErr struct {
	Err string `json:"error"`
}

func (r RespErr) Error() string {
	return r.Err
}
