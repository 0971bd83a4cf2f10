package clawlaunch

import (
	"sync"
	"testing"
	"time"

	"github.com/fomo4claw/clawlaunch/config"
	"github.com/fomo4claw/clawlaunch/schema"
	"github.com/stretchr/testify/assert"
)

// testService wires only the pieces the sequential ingestion path touches.
func testService(t *testing.T) *ClawLaunch {
	store, err := NewBoltStore(t.TempDir())
	assert.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	wdb := NewSqliteDb(t.TempDir())
	assert.NoError(t, wdb.Migrate())
	t.Cleanup(wdb.Close)

	cfg := config.New("", t.TempDir(), true)
	t.Cleanup(cfg.Close)

	return &ClawLaunch{
		store:  store,
		wdb:    wdb,
		config: cfg,
	}
}

func TestProcessMentionIdempotent(t *testing.T) {
	s := testService(t)

	mention := schema.Mention{
		ID:        "1866000000000000001",
		Text:      "!launchcoin gibberish with no fields",
		CreatedAt: time.Now(),
	}

	var wg sync.WaitGroup
	first := &scanResults{}
	s.processMention(mention, first, &wg)
	wg.Wait()
	assert.Equal(t, 1, first.Skipped) // unparseable, skipped after marking
	assert.True(t, s.store.IsTweetProcessed(mention.ID))

	// same id again: already marked, skipped without any work
	second := &scanResults{}
	s.processMention(mention, second, &wg)
	wg.Wait()
	assert.Equal(t, 1, second.Skipped)
	assert.True(t, s.store.IsTweetProcessed(mention.ID))
}

func TestProcessMentionRateLimited(t *testing.T) {
	s := testService(t)
	wallet := "0x742d35cc6634c0532925a3b844bc9e7595f2bd12"

	// a launch from this wallet an hour ago consumes the 24h budget
	assert.NoError(t, s.wdb.SaveLaunch(schema.LaunchRecord{
		TweetID: "1", Symbol: "FIRST", Wallet: wallet,
		Status: schema.LaunchStatusLaunched, CreatedAt: time.Now().Add(-time.Hour),
	}))

	mention := schema.Mention{
		ID: "2",
		Text: "!launchcoin\nname: Second Coin\nsymbol: SECOND\nwallet: " + wallet +
			"\ndescription: again\nimage: https://iili.io/x.jpg",
		CreatedAt: time.Now(),
	}

	var wg sync.WaitGroup
	results := &scanResults{}
	s.processMention(mention, results, &wg)
	wg.Wait()
	assert.Equal(t, 1, results.Skipped)
	assert.Equal(t, 0, results.Failed)

	// no record was created for the rejected mention
	_, err := s.wdb.GetLaunch("2")
	assert.Error(t, err)
}

func TestProcessMentionDuplicateSymbol(t *testing.T) {
	s := testService(t)

	assert.NoError(t, s.wdb.SaveLaunch(schema.LaunchRecord{
		TweetID: "1", Symbol: "MOLTY", Wallet: "0x1111111111111111111111111111111111111111",
		Status: schema.LaunchStatusLaunched, CreatedAt: time.Now(),
	}))

	// same symbol, different case, different wallet
	mention := schema.Mention{
		ID: "2",
		Text: "!launchcoin\nname: Copy Coin\nsymbol: molty\nwallet: 0x742d35cc6634c0532925a3b844bc9e7595f2bd12" +
			"\ndescription: copycat\nimage: https://iili.io/x.jpg",
		CreatedAt: time.Now(),
	}

	var wg sync.WaitGroup
	results := &scanResults{}
	s.processMention(mention, results, &wg)
	wg.Wait()
	assert.Equal(t, 1, results.Skipped)

	_, err := s.wdb.GetLaunch("2")
	assert.Error(t, err)
}

func TestWithinRateLimitCountsFailedLaunches(t *testing.T) {
	s := testService(t)
	wallet := "0x742d35cc6634c0532925a3b844bc9e7595f2bd12"

	assert.True(t, s.withinRateLimit(wallet))

	// a failed attempt still consumes the wallet's window
	assert.NoError(t, s.wdb.SaveLaunch(schema.LaunchRecord{
		TweetID: "1", Symbol: "BROKE", Wallet: wallet,
		Status: schema.LaunchStatusFailed, CreatedAt: time.Now(),
	}))
	assert.False(t, s.withinRateLimit(wallet))

	// an old record outside the window does not
	other := "0x0000000000000000000000000000000000000abc"
	assert.NoError(t, s.wdb.SaveLaunch(schema.LaunchRecord{
		TweetID: "2", Symbol: "OLD", Wallet: other,
		Status: schema.LaunchStatusFailed, CreatedAt: time.Now().Add(-72 * time.Hour),
	}))
	assert.True(t, s.withinRateLimit(other))
}
