package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/mikey2shiesty/ZapSplit-sub002/internal/domain"
)

// SettlementUseCase records payments against splits. All writes for one
// split are serialized behind a row lock so concurrent payments cannot
// race the completion check.
type SettlementUseCase struct {
	txManager       TransactionManager
	splitRepo       SplitRepository
	participantRepo ParticipantRepository
	paymentRepo     PaymentRepository
	outboxRepo      OutboxRepository
	idGen           IDGenerator
	cache           Cache
	retrier         Retrier
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(
	txManager TransactionManager,
	splitRepo SplitRepository,
	participantRepo ParticipantRepository,
	paymentRepo PaymentRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *SettlementUseCase {
	return &SettlementUseCase{
		txManager:       txManager,
		splitRepo:       splitRepo,
		participantRepo: participantRepo,
		paymentRepo:     paymentRepo,
		outboxRepo:      outboxRepo,
		idGen:           idGen,
	}
}

// WithCache enables balance cache invalidation after settlement writes.
func (uc *SettlementUseCase) WithCache(cache Cache) *SettlementUseCase {
	uc.cache = cache
	return uc
}

// WithRetrier enables automatic retry on transient storage errors.
func (uc *SettlementUseCase) WithRetrier(retrier Retrier) *SettlementUseCase {
	uc.retrier = retrier
	return uc
}

// RecordPaymentInput represents one payment event. Exactly one of
// UserID (participant channel) or PayerIdentity (web channel) must be
// set. IdempotencyKey is scoped to the split.
type RecordPaymentInput struct {
	SplitID        string
	UserID         string
	PayerIdentity  string
	Amount         domain.Money
	IdempotencyKey string
}

// SettlementResult describes the outcome of recording a payment.
type SettlementResult struct {
	Split     *domain.Split
	Payment   *domain.Payment
	Applied   domain.Money
	Remaining domain.Money
	Completed bool
	Duplicate bool
}

// RecordPayment applies a payment to a split. Replays of an already
// recorded (split, idempotency key) pair succeed without side effects
// and report the current split state.
func (uc *SettlementUseCase) RecordPayment(ctx context.Context, input RecordPaymentInput) (*SettlementResult, error) {
	if err := domain.ValidateIdempotencyKey(input.IdempotencyKey); err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if input.UserID == "" && input.PayerIdentity == "" {
		return nil, domain.ErrMissingPayer
	}

	if input.UserID != "" && input.PayerIdentity != "" {
		return nil, domain.ErrAmbiguousPayer
	}

	var result *SettlementResult

	operation := func() error {
		r, err := uc.recordPayment(ctx, input)
		if err != nil {
			return err
		}
		result = r
		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}
	if err != nil {
		return nil, err
	}

	if !result.Duplicate {
		uc.invalidateBalances(ctx, result.Split)
	}

	return result, nil
}

func (uc *SettlementUseCase) recordPayment(ctx context.Context, input RecordPaymentInput) (*SettlementResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Lock the split row. Every settlement write for this split queues here.
	split, err := uc.splitRepo.GetByIDForUpdate(txCtx, tx, input.SplitID)
	if err != nil {
		return nil, err
	}

	if split.Status == domain.SplitStatusCancelled {
		return nil, domain.ErrSplitNotActive
	}

	if input.Amount.Currency != split.Total.Currency {
		return nil, domain.ErrCurrencyMismatch
	}

	split.Participants, err = uc.participantRepo.ListBySplitTx(txCtx, tx, split.ID)
	if err != nil {
		return nil, err
	}

	var participant *domain.Participant
	if input.UserID != "" {
		participant = split.ParticipantFor(input.UserID)
		if participant == nil {
			return nil, domain.ErrParticipantNotFound
		}
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:             uc.idGen.Generate(),
		SplitID:        split.ID,
		PayerIdentity:  input.PayerIdentity,
		Amount:         input.Amount,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      now,
	}
	if participant != nil {
		payment.ParticipantID = &participant.UserID
	}

	if err := payment.Validate(); err != nil {
		return nil, err
	}

	// The raw payment row is the audit trail and the idempotency guard.
	// Insert it first so a replay fails fast on the unique key.
	if err := uc.paymentRepo.Create(txCtx, tx, payment); err != nil {
		if errors.Is(err, domain.ErrDuplicatePayment) {
			_ = tx.Rollback(txCtx)
			return uc.duplicateResult(ctx, input.SplitID, input.IdempotencyKey)
		}
		return nil, err
	}

	// Only an active split takes the payment against its balances. Late
	// payments on a completed split stay in the audit trail but must not
	// mutate participant rows or collect past the total.
	applied := split.Total.Zero()
	if split.Status == domain.SplitStatusActive {
		applied = input.Amount
		if participant != nil {
			applied = participant.ApplyPayment(input.Amount)
			if err := uc.participantRepo.UpdatePayment(txCtx, tx, participant); err != nil {
				return nil, err
			}
		}
	}

	split.Payments, err = uc.paymentRepo.ListBySplitTx(txCtx, tx, split.ID)
	if err != nil {
		return nil, err
	}

	remaining := split.AmountRemaining()

	completed := false
	if split.Status == domain.SplitStatusActive && split.IsSettled() {
		if err := uc.splitRepo.UpdateStatus(txCtx, tx, split.ID, domain.SplitStatusCompleted, now); err != nil {
			return nil, err
		}
		split.Status = domain.SplitStatusCompleted
		split.UpdatedAt = now
		completed = true

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   split.ID,
			AggregateType: domain.AggregateTypeSplit,
			EventType:     domain.EventTypeSplitCompleted,
			Payload: map[string]any{
				"split_id":         split.ID,
				"total_cents":      split.Total.Cents,
				"currency":         split.Total.Currency,
				"final_payment_id": payment.ID,
			},
			CreatedAt: now,
			Published: false,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return nil, err
		}
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   payment.ID,
		AggregateType: domain.AggregateTypePayment,
		EventType:     domain.EventTypePaymentRecorded,
		Payload: map[string]any{
			"payment_id":      payment.ID,
			"split_id":        split.ID,
			"participant_id":  input.UserID,
			"payer_identity":  input.PayerIdentity,
			"amount_cents":    payment.Amount.Cents,
			"currency":        payment.Amount.Currency,
			"web_payment":     payment.IsWeb(),
			"remaining_cents": remaining.Cents,
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return &SettlementResult{
		Split:     split,
		Payment:   payment,
		Applied:   applied,
		Remaining: remaining,
		Completed: completed,
	}, nil
}

// duplicateResult reports the current split state for a replayed
// payment. The original write already happened; replays are a success
// with no side effects.
func (uc *SettlementUseCase) duplicateResult(ctx context.Context, splitID, idempotencyKey string) (*SettlementResult, error) {
	split, err := uc.splitRepo.GetByID(ctx, splitID)
	if err != nil {
		return nil, err
	}

	split.Participants, err = uc.participantRepo.ListBySplit(ctx, splitID)
	if err != nil {
		return nil, err
	}

	split.Payments, err = uc.paymentRepo.ListBySplit(ctx, splitID)
	if err != nil {
		return nil, err
	}

	var original *domain.Payment
	for _, p := range split.Payments {
		if p.IdempotencyKey == idempotencyKey {
			original = p
			break
		}
	}

	return &SettlementResult{
		Split:     split,
		Payment:   original,
		Applied:   split.Total.Zero(),
		Remaining: split.AmountRemaining(),
		Duplicate: true,
	}, nil
}

func (uc *SettlementUseCase) invalidateBalances(ctx context.Context, split *domain.Split) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, balanceCacheKey(split.CreatorID))
	for _, p := range split.Participants {
		if p.UserID != split.CreatorID {
			_ = uc.cache.Delete(ctx, balanceCacheKey(p.UserID))
		}
	}
}
