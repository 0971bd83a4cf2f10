package salt

import (
	"context"
	"fmt"
	"time"

	"github.com/fomo4claw/clawlaunch/schema"
	"github.com/tidwall/gjson"
	"gopkg.in/h2non/gentleman.v2"
	"gopkg.in/h2non/gentleman.v2/plugins/timeout"
)

const remoteMineTimeout = 120 * time.Second

// RemoteSource delegates mining to a standalone salt-miner service
// (POST {base}/mine). Preferred on serverless deploys where the helper
// binaries are unavailable.
type RemoteSource struct {
	cli    *gentleman.Client
	apiKey string
}

func NewRemoteSource(baseURL, apiKey string) *RemoteSource {
	cli := gentleman.New().URL(baseURL)
	cli.Use(timeout.Request(remoteMineTimeout))
	return &RemoteSource{
		cli:    cli,
		apiKey: apiKey,
	}
}

func (r *RemoteSource) Name() string {
	return "remote"
}

func (r *RemoteSource) Mine(ctx context.Context, req MineRequest) (Salt, error) {
	httpReq := r.cli.Post()
	httpReq.AddPath("/mine")
	if r.apiKey != "" {
		httpReq.SetHeader("X-API-Key", r.apiKey)
	}
	httpReq.JSON(req)

	resp, err := httpReq.Send()
	if err != nil {
		return Salt{}, fmt.Errorf("%w: %v", schema.ErrMineUnavailable, err)
	}
	defer resp.Close()
	if !resp.Ok {
		return Salt{}, fmt.Errorf("%w: miner returned %d: %s", schema.ErrMineUnavailable, resp.StatusCode, gjson.GetBytes(resp.Bytes(), "error").String())
	}

	body := resp.Bytes()
	s, err := ParseSalt(gjson.GetBytes(body, "salt").String())
	if err != nil {
		return Salt{}, fmt.Errorf("%w: invalid salt in miner response: %v", schema.ErrMineUnavailable, err)
	}

	// the miner may echo which token it mined for; a mismatch means the salt
	// derives an address for different init code and must not be used
	echoName := gjson.GetBytes(body, "tokenName")
	echoSymbol := gjson.GetBytes(body, "tokenSymbol")
	if echoName.Exists() && echoSymbol.Exists() {
		if echoName.String() != req.TokenName || echoSymbol.String() != req.TokenSymbol {
			return Salt{}, fmt.Errorf("%w: salt mined for %q/%q, requested %q/%q",
				schema.ErrMineUnavailable, echoName.String(), echoSymbol.String(), req.TokenName, req.TokenSymbol)
		}
	}
	return s, nil
}
