package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long HTTP idempotency replay entries are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultBalanceCacheTTL is how long cached balance summaries stay fresh
	// when the server config does not override it
	DefaultBalanceCacheTTL = 5 * time.Minute
)
