package twitter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const searchBody = `{
  "data": [
    {"id": "222", "text": "@fomo4claw_bot !launchcoin\nname: Two", "author_id": "u2", "created_at": "2026-03-02T10:00:00Z"},
    {"id": "111", "text": "@fomo4claw_bot !launchcoin\nname: One", "author_id": "u1", "created_at": "2026-03-01T10:00:00Z"}
  ],
  "includes": {"users": [
    {"id": "u1", "username": "alice"},
    {"id": "u2", "username": "bob"}
  ]}
}`

func TestFetchLaunchMentions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2/tweets/search/recent", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		q := r.URL.Query()
		assert.Contains(t, q.Get("query"), "@fomo4claw_bot")
		assert.Contains(t, q.Get("query"), LaunchTrigger)
		assert.Equal(t, "100", q.Get("since_id"))
		w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	cli := NewWithURL(srv.URL, "token", "fomo4claw_bot")
	mentions, err := cli.FetchLaunchMentions("100", 50)
	assert.NoError(t, err)
	assert.Len(t, mentions, 2)

	// oldest first
	assert.Equal(t, "111", mentions[0].ID)
	assert.Equal(t, "alice", mentions[0].AuthorUsername)
	assert.Equal(t, "https://twitter.com/alice/status/111", mentions[0].URL)
	assert.Equal(t, "222", mentions[1].ID)
}

func TestFetchLaunchMentionsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cli := NewWithURL(srv.URL, "token", "fomo4claw_bot")
	_, err := cli.FetchLaunchMentions("", 10)
	assert.Error(t, err)
}

func TestReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2/tweets", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"999"}}`))
	}))
	defer srv.Close()

	cli := NewWithURL(srv.URL, "token", "fomo4claw_bot")
	assert.NoError(t, cli.Reply("111", "done"))
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New("", "fomo4claw_bot")
	assert.Error(t, err)
}
