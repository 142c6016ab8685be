package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type balanceQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// BalanceRepository implements usecase.BalanceRepository with aggregate
// queries over active splits. Everything is recomputed from participant
// and payment rows on each call; nothing incremental is stored.
type BalanceRepository struct {
	pool balanceQuerier
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepository {
	return newBalanceRepositoryWithPool(pool)
}

func newBalanceRepositoryWithPool(pool balanceQuerier) *BalanceRepository {
	return &BalanceRepository{pool: pool}
}

// OwedByUser sums what the user still owes in active splits created by
// someone else, grouped by currency.
func (r *BalanceRepository) OwedByUser(ctx context.Context, userID string) (map[string]int64, error) {
	query := `
		SELECT p.currency, SUM(p.amount_owed_cents - p.amount_paid_cents)
		FROM participants p
		JOIN splits s ON s.id = p.split_id
		WHERE p.user_id = $1
		  AND s.creator_id <> $1
		  AND s.status = 'active'
		GROUP BY p.currency
	`

	return r.sumByCurrency(ctx, query, userID)
}

// OwedToUser sums the split-level amount remaining on active splits
// the user created, grouped by currency. Remaining folds in both
// collection channels: clamped participant payments and anonymous web
// payments (payments rows with no participant), floored at zero per
// split to mirror Split.AmountRemaining.
func (r *BalanceRepository) OwedToUser(ctx context.Context, userID string) (map[string]int64, error) {
	query := `
		SELECT s.currency,
		       SUM(GREATEST(0, s.total_cents - COALESCE(pp.paid_cents, 0) - COALESCE(wp.paid_cents, 0)))
		FROM splits s
		LEFT JOIN (
			SELECT split_id, SUM(amount_paid_cents) AS paid_cents
			FROM participants
			GROUP BY split_id
		) pp ON pp.split_id = s.id
		LEFT JOIN (
			SELECT split_id, SUM(amount_cents) AS paid_cents
			FROM payments
			WHERE participant_id IS NULL
			GROUP BY split_id
		) wp ON wp.split_id = s.id
		WHERE s.creator_id = $1
		  AND s.status = 'active'
		GROUP BY s.currency
	`

	return r.sumByCurrency(ctx, query, userID)
}

func (r *BalanceRepository) sumByCurrency(ctx context.Context, query, userID string) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := make(map[string]int64)
	for rows.Next() {
		var (
			currency string
			cents    int64
		)
		if err := rows.Scan(&currency, &cents); err != nil {
			return nil, err
		}
		sums[currency] = cents
	}

	return sums, rows.Err()
}
