package clawlaunch

import (
	"github.com/fomo4claw/clawlaunch/rawdb"
	"github.com/fomo4claw/clawlaunch/schema"
)

// Store wraps the raw KV backend with the ingestion bookkeeping the scan
// loop needs. MarkTweetProcessed runs before any per-tweet work, so a tweet
// is attempted at most once even when the work after it crashes.
type Store struct {
	KVDb rawdb.KeyValueDB
}

func NewBoltStore(boltDirPath string) (*Store, error) {
	boltDb, err := rawdb.NewBoltDB(boltDirPath)
	if err != nil {
		return nil, err
	}
	return &Store{KVDb: boltDb}, nil
}

func NewS3Store(accKey, secretKey, region, bucketPrefix, endpoint string) (*Store, error) {
	s3Db, err := rawdb.NewS3DB(accKey, secretKey, region, bucketPrefix, endpoint)
	if err != nil {
		return nil, err
	}
	return &Store{KVDb: s3Db}, nil
}

func (s *Store) MarkTweetProcessed(tweetID string) error {
	return s.KVDb.Put(schema.ProcessedTweetBucket, tweetID, []byte("1"))
}

func (s *Store) IsTweetProcessed(tweetID string) bool {
	return s.KVDb.Exist(schema.ProcessedTweetBucket, tweetID)
}

func (s *Store) SaveScanCursor(mentionID string) error {
	return s.KVDb.Put(schema.ScanCursorBucket, schema.ScanCursorKey, []byte(mentionID))
}

// LoadScanCursor returns "" when no cursor was saved yet; the first scan then
// pages from the source's default window.
func (s *Store) LoadScanCursor() (string, error) {
	data, err := s.KVDb.Get(schema.ScanCursorBucket, schema.ScanCursorKey)
	if err != nil {
		if err == schema.ErrNotExist {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

func (s *Store) Close() error {
	return s.KVDb.Close()
}
