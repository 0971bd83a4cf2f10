package clawlaunch

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fomo4claw/clawlaunch/schema"
)

// scanResults aggregates one scan cycle. Counters are updated from pool
// workers, hence the lock.
type scanResults struct {
	mu sync.Mutex
	schema.RespScan
}

func (r *scanResults) launched() {
	r.mu.Lock()
	r.Launched++
	r.Processed++
	r.mu.Unlock()
}

func (r *scanResults) skipped() {
	r.mu.Lock()
	r.Skipped++
	r.mu.Unlock()
}

func (r *scanResults) failed(tweetID string, err error) {
	r.mu.Lock()
	r.Failed++
	r.Errors = append(r.Errors, fmt.Sprintf("tweet %s: %s", tweetID, err.Error()))
	r.mu.Unlock()
}

// runScan executes one ingestion cycle: fetch mentions after the cursor,
// validate sequentially, launch accepted ones on the worker pool, wait for
// the batch. Every mention is marked processed before any work on it, so a
// crash can drop a tweet but never launch it twice.
func (s *ClawLaunch) runScan() (schema.RespScan, error) {
	s.scanLocker.Lock()
	defer s.scanLocker.Unlock()

	cursor, err := s.store.LoadScanCursor()
	if err != nil {
		return schema.RespScan{}, err
	}
	mentions, err := s.twitterCli.FetchLaunchMentions(cursor, s.config.ScanBatchSize())
	if err != nil {
		return schema.RespScan{}, err
	}
	scanMentions.Add(float64(len(mentions)))

	results := &scanResults{}
	results.MentionsFound = len(mentions)
	results.Errors = make([]string, 0)

	var wg sync.WaitGroup
	for _, mention := range mentions {
		s.processMention(mention, results, &wg)
	}
	wg.Wait()

	if len(mentions) > 0 {
		// mentions are oldest first
		last := mentions[len(mentions)-1].ID
		if err := s.store.SaveScanCursor(last); err != nil {
			log.Error("save scan cursor failed", "cursor", last, "err", err)
		}
	}

	results.mu.Lock()
	defer results.mu.Unlock()
	return results.RespScan, nil
}

// processMention runs the sequential part of ingestion for one mention and
// hands accepted requests to the launch pool.
func (s *ClawLaunch) processMention(mention schema.Mention, results *scanResults, wg *sync.WaitGroup) {
	if s.store.IsTweetProcessed(mention.ID) {
		results.skipped()
		return
	}
	// mark first; a crash after this point drops the tweet instead of
	// double-launching it
	if err := s.store.MarkTweetProcessed(mention.ID); err != nil {
		results.failed(mention.ID, err)
		return
	}

	req, parseErrs := ParseLaunchTweet(mention.Text)
	if req == nil {
		results.skipped()
		log.Debug("mention parse failed", "tweetId", mention.ID, "errors", strings.Join(parseErrs, "; "))
		if len(parseErrs) > 0 && parseErrs[0] != schema.ErrNoTrigger.Error() {
			s.reply(mention.ID, "Could not parse launch request: "+strings.Join(parseErrs, "; ")+
				"\n\nFormat:\n"+ExampleTweet)
		}
		return
	}

	if !s.withinRateLimit(req.Wallet) {
		results.skipped()
		s.reply(mention.ID, fmt.Sprintf("Rate limit: 1 launch per %d hours per wallet. Please wait.",
			s.config.RateLimitHours()))
		return
	}

	exists, err := s.wdb.ExistsSymbol(req.Symbol)
	if err != nil {
		results.failed(mention.ID, err)
		return
	}
	if exists {
		results.skipped()
		s.reply(mention.ID, fmt.Sprintf("Symbol %s already launched. Choose a different symbol.", req.Symbol))
		return
	}

	rec := schema.LaunchRecord{
		TweetID:      mention.ID,
		TweetURL:     mention.URL,
		AuthorHandle: mention.AuthorUsername,
		AuthorID:     mention.AuthorID,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Wallet:       req.Wallet,
		Status:       schema.LaunchStatusProcessing,
		CreatedAt:    mention.CreatedAt,
	}
	if err := s.wdb.SaveLaunch(rec); err != nil {
		results.failed(mention.ID, err)
		return
	}

	wg.Add(1)
	if err := s.launchPool.Submit(func() {
		defer wg.Done()
		s.launchMention(mention, rec, req, results)
	}); err != nil {
		wg.Done()
		results.failed(mention.ID, err)
		_ = s.failLaunch(rec, fmt.Errorf("%w: %v", schema.ErrSubmission, err))
	}
}

// launchMention is the pooled half: param assembly (salt mining included)
// plus on-chain execution.
func (s *ClawLaunch) launchMention(mention schema.Mention, rec schema.LaunchRecord, req *schema.LaunchRequest, results *scanResults) {
	params, _, err := s.prepareLaunch(req, s.currency, 0)
	if err != nil {
		results.failed(mention.ID, err)
		_ = s.failLaunch(rec, err)
		return
	}
	if err := s.executeLaunch(rec, params); err != nil {
		results.failed(mention.ID, err)
		return
	}
	results.launched()

	fresh, err := s.wdb.GetLaunch(rec.TweetID)
	if err == nil {
		s.reply(mention.ID, fmt.Sprintf("Launch successful!\n\nToken: %s (%s)\nAddress: %s\nTx: %s%s",
			rec.Name, rec.Symbol, fresh.TokenAddress, s.chain.ExplorerTxPrefix, fresh.TxHash))
	}
}

// withinRateLimit allows one launch per wallet per configured window.
// Every prior record counts, failed attempts included.
func (s *ClawLaunch) withinRateLimit(wallet string) bool {
	since := time.Now().Add(-s.config.RateLimitWindow())
	recent, err := s.wdb.GetLaunchesByWallet(wallet, since)
	if err != nil {
		log.Error("rate limit lookup failed", "wallet", wallet, "err", err)
		return false
	}
	return len(recent) == 0
}

// reply is best-effort; a failed reply never affects the pipeline.
func (s *ClawLaunch) reply(tweetID, text string) {
	if s.twitterCli == nil {
		return
	}
	if err := s.twitterCli.Reply(tweetID, text); err != nil {
		log.Warn("reply failed", "tweetId", tweetID, "err", err)
	}
}
