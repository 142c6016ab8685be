package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mikey2shiesty/ZapSplit-sub002/internal/domain"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/usecase"
)

// ParticipantRepository implements usecase.ParticipantRepository.
type ParticipantRepository struct {
	pool *pgxpool.Pool
}

// NewParticipantRepository creates a new ParticipantRepository.
func NewParticipantRepository(pool *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{pool: pool}
}

// CreateBatch inserts participant rows within a transaction. Rows are
// created with the split and never deleted.
func (r *ParticipantRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, participants []*domain.Participant) error {
	query := `
		INSERT INTO participants (split_id, user_id, amount_owed_cents, amount_paid_cents, currency, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	q := txQuerier(tx)
	for _, p := range participants {
		_, err := q.Exec(ctx, query,
			p.SplitID,
			p.UserID,
			p.AmountOwed.Cents,
			p.AmountPaid.Cents,
			p.AmountOwed.Currency,
			string(p.Status),
			p.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// ListBySplit lists a split's participants in allocation order.
func (r *ParticipantRepository) ListBySplit(ctx context.Context, splitID string) ([]*domain.Participant, error) {
	return listParticipants(ctx, r.pool, splitID)
}

// ListBySplitTx lists a split's participants inside a transaction.
func (r *ParticipantRepository) ListBySplitTx(ctx context.Context, tx usecase.Transaction, splitID string) ([]*domain.Participant, error) {
	return listParticipants(ctx, txQuerier(tx), splitID)
}

// UpdatePayment writes a participant's settlement state.
func (r *ParticipantRepository) UpdatePayment(ctx context.Context, tx usecase.Transaction, participant *domain.Participant) error {
	query := `
		UPDATE participants
		SET amount_paid_cents = $3, status = $4
		WHERE split_id = $1 AND user_id = $2
	`

	tag, err := txQuerier(tx).Exec(ctx, query,
		participant.SplitID,
		participant.UserID,
		participant.AmountPaid.Cents,
		string(participant.Status),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrParticipantNotFound
	}

	return nil
}

func listParticipants(ctx context.Context, q querier, splitID string) ([]*domain.Participant, error) {
	query := `
		SELECT split_id, user_id, amount_owed_cents, amount_paid_cents, currency, status, created_at
		FROM participants
		WHERE split_id = $1
		ORDER BY created_at, user_id
	`

	rows, err := q.Query(ctx, query, splitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []*domain.Participant
	for rows.Next() {
		var (
			p         domain.Participant
			owedCents int64
			paidCents int64
			currency  string
			status    string
		)

		err := rows.Scan(
			&p.SplitID,
			&p.UserID,
			&owedCents,
			&paidCents,
			&currency,
			&status,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		p.AmountOwed = domain.NewMoney(owedCents, currency)
		p.AmountPaid = domain.NewMoney(paidCents, currency)
		p.Status = domain.ParticipantStatus(status)

		participants = append(participants, &p)
	}

	return participants, rows.Err()
}
