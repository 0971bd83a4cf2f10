package schema

import (
	"errors"
)

var (
	ErrNotExist     = errors.New("not_exist_record")
	ErrNotFound     = errors.New("not_found")
	ErrExist        = errors.New("s3_bucket_exist")
	ErrNotImplement = errors.New("method not implement")

	// ingestion outcomes, non-retryable per tweet
	ErrNoTrigger       = errors.New("no_launch_trigger")
	ErrRateLimited     = errors.New("rate_limited")
	ErrDuplicateSymbol = errors.New("duplicate_symbol")

	// salt mining, strategy level only
	ErrMineUnavailable = errors.New("salt_mining_unavailable")
	ErrMineTimeout     = errors.New("salt_mining_timeout")

	// launch execution, terminal per tweet
	ErrSubmission   = errors.New("launch_submission_failed")
	ErrConfirmation = errors.New("launch_confirmation_failed")

	// invocation level, aborts the whole request
	ErrConfiguration = errors.New("missing_configuration")
)
