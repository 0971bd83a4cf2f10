// Package twitter is the mention source: it polls the X API v2 recent search
// for bot mentions carrying the launch trigger and posts best-effort replies.
package twitter

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fomo4claw/clawlaunch/schema"
	"github.com/inconshreveable/log15"
	"github.com/tidwall/gjson"
	"gopkg.in/h2non/gentleman.v2"
	"gopkg.in/h2non/gentleman.v2/plugins/timeout"
)

var log = log15.New("module", "twitter")

const (
	apiURL         = "https://api.twitter.com"
	requestTimeout = 30 * time.Second
	maxPageSize    = 100 // API limit per request
)

// LaunchTrigger marks a mention as a launch request.
const LaunchTrigger = "!launchcoin"

type Client struct {
	cli    *gentleman.Client
	handle string // bot handle without the @
}

func New(bearerToken, handle string) (*Client, error) {
	if bearerToken == "" {
		return nil, errors.New("twitter bearer token not configured")
	}
	cli := gentleman.New().URL(apiURL)
	cli.Use(timeout.Request(requestTimeout))
	cli.SetHeader("Authorization", "Bearer "+bearerToken)
	return &Client{
		cli:    cli,
		handle: handle,
	}, nil
}

// NewWithURL is used by tests to point the client at a local server.
func NewWithURL(baseURL, bearerToken, handle string) *Client {
	cli := gentleman.New().URL(baseURL)
	cli.Use(timeout.Request(requestTimeout))
	cli.SetHeader("Authorization", "Bearer "+bearerToken)
	return &Client{cli: cli, handle: handle}
}

// FetchLaunchMentions returns bot mentions containing the launch trigger,
// newer than sinceID when set, oldest first so cursor advancement is
// monotonic.
func (c *Client) FetchLaunchMentions(sinceID string, maxResults int) ([]schema.Mention, error) {
	if maxResults <= 0 || maxResults > maxPageSize {
		maxResults = maxPageSize
	}
	req := c.cli.Get()
	req.AddPath("/2/tweets/search/recent")
	req.SetQuery("query", fmt.Sprintf("@%s %s -is:retweet", c.handle, LaunchTrigger))
	req.SetQuery("max_results", strconv.Itoa(maxResults))
	req.SetQuery("tweet.fields", "created_at,author_id,text")
	req.SetQuery("user.fields", "username")
	req.SetQuery("expansions", "author_id")
	if sinceID != "" {
		req.SetQuery("since_id", sinceID)
	}

	resp, err := req.Send()
	if err != nil {
		return nil, err
	}
	defer resp.Close()
	if !resp.Ok {
		return nil, fmt.Errorf("mention search returned %d: %.200s", resp.StatusCode, resp.String())
	}

	body := resp.Bytes()
	usernames := make(map[string]string)
	for _, u := range gjson.GetBytes(body, "includes.users").Array() {
		usernames[u.Get("id").String()] = u.Get("username").String()
	}

	mentions := make([]schema.Mention, 0)
	for _, tw := range gjson.GetBytes(body, "data").Array() {
		authorID := tw.Get("author_id").String()
		username, ok := usernames[authorID]
		if !ok {
			continue
		}
		createdAt, _ := time.Parse(time.RFC3339, tw.Get("created_at").String())
		id := tw.Get("id").String()
		mentions = append(mentions, schema.Mention{
			ID:             id,
			Text:           tw.Get("text").String(),
			AuthorID:       authorID,
			AuthorUsername: username,
			CreatedAt:      createdAt,
			URL:            fmt.Sprintf("https://twitter.com/%s/status/%s", username, id),
		})
	}

	// recent search returns newest first; process in arrival order
	for i, j := 0, len(mentions)-1; i < j; i, j = i+1, j-1 {
		mentions[i], mentions[j] = mentions[j], mentions[i]
	}
	return mentions, nil
}

// Reply posts a reply to a tweet. Best effort: callers log failures and move
// on, a lost reply never blocks a launch.
func (c *Client) Reply(tweetID, text string) error {
	req := c.cli.Post()
	req.AddPath("/2/tweets")
	req.JSON(map[string]interface{}{
		"text": text,
		"reply": map[string]string{
			"in_reply_to_tweet_id": tweetID,
		},
	})
	resp, err := req.Send()
	if err != nil {
		return err
	}
	defer resp.Close()
	if !resp.Ok {
		return fmt.Errorf("reply returned %d: %.200s", resp.StatusCode, resp.String())
	}
	return nil
}
