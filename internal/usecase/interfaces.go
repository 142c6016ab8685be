package usecase

import (
	"context"
	"time"

	"github.com/mikey2shiesty/ZapSplit-sub002/internal/domain"
)

// SplitRepository defines data access for split records.
type SplitRepository interface {
	Create(ctx context.Context, tx Transaction, split *domain.Split) error
	GetByID(ctx context.Context, id string) (*domain.Split, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Split, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.SplitStatus, updatedAt time.Time) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Split, error)
}

// ParticipantRepository defines data access for participant rows.
// Rows are created with the split and never deleted.
type ParticipantRepository interface {
	CreateBatch(ctx context.Context, tx Transaction, participants []*domain.Participant) error
	ListBySplit(ctx context.Context, splitID string) ([]*domain.Participant, error)
	ListBySplitTx(ctx context.Context, tx Transaction, splitID string) ([]*domain.Participant, error)
	UpdatePayment(ctx context.Context, tx Transaction, participant *domain.Participant) error
}

// PaymentRepository defines data access for the payment audit trail.
type PaymentRepository interface {
	// Create inserts a payment. It returns domain.ErrDuplicatePayment
	// when the (split_id, idempotency_key) pair already exists.
	Create(ctx context.Context, tx Transaction, payment *domain.Payment) error
	ListBySplit(ctx context.Context, splitID string) ([]*domain.Payment, error)
	ListBySplitTx(ctx context.Context, tx Transaction, splitID string) ([]*domain.Payment, error)
}

// BalanceRepository computes settlement aggregates across active splits.
// Values are keyed by currency in minor units.
type BalanceRepository interface {
	// OwedByUser sums the requesting user's outstanding shares in active
	// splits created by someone else.
	OwedByUser(ctx context.Context, userID string) (map[string]int64, error)
	// OwedToUser sums the amount remaining on active splits the user
	// created, folding in payments from every collection channel.
	OwedToUser(ctx context.Context, userID string) (map[string]int64, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation when it fails with a transient storage
// error (deadlock, serialization failure).
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage for response replay.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
