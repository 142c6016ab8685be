package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mikey2shiesty/ZapSplit-sub002/internal/domain"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/usecase"
)

// SplitRepository implements usecase.SplitRepository.
type SplitRepository struct {
	pool *pgxpool.Pool
}

// NewSplitRepository creates a new SplitRepository.
func NewSplitRepository(pool *pgxpool.Pool) *SplitRepository {
	return &SplitRepository{pool: pool}
}

const splitColumns = `id, creator_id, title, description, total_cents, currency, strategy, status, created_at, updated_at`

// Create inserts a new split within a transaction.
func (r *SplitRepository) Create(ctx context.Context, tx usecase.Transaction, split *domain.Split) error {
	query := `
		INSERT INTO splits (` + splitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := txQuerier(tx).Exec(ctx, query,
		split.ID,
		split.CreatorID,
		split.Title,
		split.Description,
		split.Total.Cents,
		split.Total.Currency,
		string(split.Strategy),
		string(split.Status),
		split.CreatedAt,
		split.UpdatedAt,
	)

	return err
}

// GetByID retrieves a split by ID.
func (r *SplitRepository) GetByID(ctx context.Context, id string) (*domain.Split, error) {
	query := `SELECT ` + splitColumns + ` FROM splits WHERE id = $1`

	return scanSplit(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a split by ID with a FOR UPDATE lock.
// Every settlement write for the split serializes on this lock.
func (r *SplitRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Split, error) {
	query := `SELECT ` + splitColumns + ` FROM splits WHERE id = $1 FOR UPDATE`

	return scanSplit(txQuerier(tx).QueryRow(ctx, query, id))
}

// UpdateStatus updates a split's lifecycle status.
func (r *SplitRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.SplitStatus, updatedAt time.Time) error {
	query := `UPDATE splits SET status = $2, updated_at = $3 WHERE id = $1`

	_, err := txQuerier(tx).Exec(ctx, query, id, string(status), updatedAt)

	return err
}

// ListByUser lists splits the user created or participates in, newest first.
func (r *SplitRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Split, error) {
	query := `
		SELECT ` + splitColumns + `
		FROM splits s
		WHERE s.creator_id = $1
		   OR EXISTS (
			SELECT 1 FROM participants p
			WHERE p.split_id = s.id AND p.user_id = $1
		   )
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var splits []*domain.Split
	for rows.Next() {
		split, err := scanSplit(rows)
		if err != nil {
			return nil, err
		}
		splits = append(splits, split)
	}

	return splits, rows.Err()
}

func scanSplit(row pgx.Row) (*domain.Split, error) {
	var (
		split      domain.Split
		totalCents int64
		currency   string
		strategy   string
		status     string
	)

	err := row.Scan(
		&split.ID,
		&split.CreatorID,
		&split.Title,
		&split.Description,
		&totalCents,
		&currency,
		&strategy,
		&status,
		&split.CreatedAt,
		&split.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSplitNotFound
	}
	if err != nil {
		return nil, err
	}

	split.Total = domain.NewMoney(totalCents, currency)
	split.Strategy = domain.AllocationStrategy(strategy)
	split.Status = domain.SplitStatus(status)

	return &split, nil
}
