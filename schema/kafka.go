package schema

const (
	LaunchTopic = "clawlaunch_launch"
)

// LaunchEvent is the kafka message published on record status transitions.
type LaunchEvent struct {
	EventID      string `json:"eventId"`
	TweetID      string `json:"tweetId"`
	Symbol       string `json:"symbol"`
	Wallet       string `json:"wallet"`
	Status       string `json:"status"`
	TokenAddress string `json:"tokenAddress,omitempty"`
	TxHash       string `json:"txHash,omitempty"`
	ErrMsg       string `json:"error,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}
