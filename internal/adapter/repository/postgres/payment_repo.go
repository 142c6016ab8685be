package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mikey2shiesty/ZapSplit-sub002/internal/domain"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// PaymentRepository implements usecase.PaymentRepository. The
// (split_id, idempotency_key) unique index is the idempotency guard.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Create inserts a payment within a transaction. A replayed idempotency
// key surfaces as domain.ErrDuplicatePayment.
func (r *PaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, split_id, participant_id, payer_identity, amount_cents, currency, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := txQuerier(tx).Exec(ctx, query,
		payment.ID,
		payment.SplitID,
		payment.ParticipantID,
		payment.PayerIdentity,
		payment.Amount.Cents,
		payment.Amount.Currency,
		payment.IdempotencyKey,
		payment.CreatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.ErrDuplicatePayment
	}

	return err
}

// ListBySplit lists a split's payments oldest first.
func (r *PaymentRepository) ListBySplit(ctx context.Context, splitID string) ([]*domain.Payment, error) {
	return listPayments(ctx, r.pool, splitID)
}

// ListBySplitTx lists a split's payments inside a transaction.
func (r *PaymentRepository) ListBySplitTx(ctx context.Context, tx usecase.Transaction, splitID string) ([]*domain.Payment, error) {
	return listPayments(ctx, txQuerier(tx), splitID)
}

func listPayments(ctx context.Context, q querier, splitID string) ([]*domain.Payment, error) {
	query := `
		SELECT id, split_id, participant_id, payer_identity, amount_cents, currency, idempotency_key, created_at
		FROM payments
		WHERE split_id = $1
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, splitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		var (
			p        domain.Payment
			cents    int64
			currency string
		)

		err := rows.Scan(
			&p.ID,
			&p.SplitID,
			&p.ParticipantID,
			&p.PayerIdentity,
			&cents,
			&currency,
			&p.IdempotencyKey,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		p.Amount = domain.NewMoney(cents, currency)

		payments = append(payments, &p)
	}

	return payments, rows.Err()
}
