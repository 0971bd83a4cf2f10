package schema

// kv buckets
const (
	ProcessedTweetBucket = "processed-tweet-bucket"
	ScanCursorBucket     = "scan-cursor-bucket"
	ConstantsBucket      = "constants-bucket"
)

const ScanCursorKey = "last-mention-id"

// KVBuckets is the full bucket set a KeyValueDB backend must provision.
var KVBuckets = []string{
	ProcessedTweetBucket,
	ScanCursorBucket,
	ConstantsBucket,
}
