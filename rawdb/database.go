package rawdb

import (
	"github.com/inconshreveable/log15"
)

var log = log15.New("module", "rawdb")

// KeyValueDB backs the processed-tweet set and scan cursor. Implementations
// must provide read-after-write consistency for a single writer.
type KeyValueDB interface {
	Put(bucket, key string, value []byte) (err error)

	Get(bucket, key string) (data []byte, err error)

	GetAllKey(bucket string) (keys []string, err error)

	Delete(bucket, key string) (err error)

	Close() (err error)

	Type() string

	Exist(bucket, key string) bool
}
