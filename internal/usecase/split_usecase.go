package usecase

import (
	"context"
	"time"

	"github.com/mikey2shiesty/ZapSplit-sub002/internal/domain"
)

// SplitUseCase handles split lifecycle business logic.
type SplitUseCase struct {
	txManager       TransactionManager
	splitRepo       SplitRepository
	participantRepo ParticipantRepository
	paymentRepo     PaymentRepository
	outboxRepo      OutboxRepository
	idGen           IDGenerator
	cache           Cache
}

// NewSplitUseCase creates a new SplitUseCase.
func NewSplitUseCase(
	txManager TransactionManager,
	splitRepo SplitRepository,
	participantRepo ParticipantRepository,
	paymentRepo PaymentRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *SplitUseCase {
	return &SplitUseCase{
		txManager:       txManager,
		splitRepo:       splitRepo,
		participantRepo: participantRepo,
		paymentRepo:     paymentRepo,
		outboxRepo:      outboxRepo,
		idGen:           idGen,
	}
}

// WithCache enables balance cache invalidation on split changes.
func (uc *SplitUseCase) WithCache(cache Cache) *SplitUseCase {
	uc.cache = cache
	return uc
}

// CreateSplitInput represents input for creating a split.
type CreateSplitInput struct {
	CreatorID      string
	Title          string
	Description    string
	Total          domain.Money
	Strategy       domain.AllocationStrategy
	ParticipantIDs []string
	Allocation     domain.AllocationInput
}

// CreateSplit allocates the total among participants and persists the
// split atomically with its participant rows.
func (uc *SplitUseCase) CreateSplit(ctx context.Context, input CreateSplitInput) (*domain.Split, error) {
	if err := domain.ValidateUserID(input.CreatorID); err != nil {
		return nil, err
	}

	if err := domain.ValidateTitle(input.Title); err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(input.Total); err != nil {
		return nil, err
	}

	for _, id := range input.ParticipantIDs {
		if err := domain.ValidateUserID(id); err != nil {
			return nil, err
		}
	}

	creatorIncluded := false
	for _, id := range input.ParticipantIDs {
		if id == input.CreatorID {
			creatorIncluded = true
			break
		}
	}
	if !creatorIncluded {
		return nil, domain.ErrCreatorNotParticipant
	}

	participants, err := domain.Allocate(input.Total, input.ParticipantIDs, input.Strategy, input.Allocation)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	split := &domain.Split{
		ID:           uc.idGen.Generate(),
		CreatorID:    input.CreatorID,
		Title:        input.Title,
		Description:  input.Description,
		Total:        input.Total,
		Strategy:     input.Strategy,
		Status:       domain.SplitStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
		Participants: participants,
	}

	for _, p := range participants {
		p.SplitID = split.ID
		p.CreatedAt = now
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := uc.splitRepo.Create(txCtx, tx, split); err != nil {
		return nil, err
	}

	if err := uc.participantRepo.CreateBatch(txCtx, tx, participants); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   split.ID,
		AggregateType: domain.AggregateTypeSplit,
		EventType:     domain.EventTypeSplitCreated,
		Payload: map[string]any{
			"split_id":          split.ID,
			"creator_id":        split.CreatorID,
			"total_cents":       split.Total.Cents,
			"currency":          split.Total.Currency,
			"strategy":          string(split.Strategy),
			"participant_count": len(participants),
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

	uc.invalidateBalances(ctx, split)

	return split, nil
}

// GetSplit retrieves a split with its participants and payment history.
func (uc *SplitUseCase) GetSplit(ctx context.Context, id string) (*domain.Split, error) {
	split, err := uc.splitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	split.Participants, err = uc.participantRepo.ListBySplit(ctx, id)
	if err != nil {
		return nil, err
	}

	split.Payments, err = uc.paymentRepo.ListBySplit(ctx, id)
	if err != nil {
		return nil, err
	}

	return split, nil
}

// ListSplitsByUserInput represents input for listing a user's splits.
type ListSplitsByUserInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListSplitsByUser lists splits the user created or participates in,
// newest first.
func (uc *SplitUseCase) ListSplitsByUser(ctx context.Context, input ListSplitsByUserInput) ([]*domain.Split, error) {
	if err := domain.ValidateUserID(input.UserID); err != nil {
		return nil, err
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.splitRepo.ListByUser(ctx, input.UserID, limit, offset)
}

// ListPayments lists the payment audit trail for a split.
func (uc *SplitUseCase) ListPayments(ctx context.Context, splitID string) ([]*domain.Payment, error) {
	if _, err := uc.splitRepo.GetByID(ctx, splitID); err != nil {
		return nil, err
	}

	return uc.paymentRepo.ListBySplit(ctx, splitID)
}

// CancelSplit cancels an active split. Only the creator may cancel, and
// a cancelled split rejects further payments.
func (uc *SplitUseCase) CancelSplit(ctx context.Context, splitID, requesterID string) (*domain.Split, error) {
	if err := domain.ValidateUserID(requesterID); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	split, err := uc.splitRepo.GetByIDForUpdate(txCtx, tx, splitID)
	if err != nil {
		return nil, err
	}

	if split.CreatorID != requesterID {
		return nil, domain.ErrNotCreator
	}

	if split.Status != domain.SplitStatusActive {
		return nil, domain.ErrSplitNotActive
	}

	now := time.Now().UTC()
	if err := uc.splitRepo.UpdateStatus(txCtx, tx, split.ID, domain.SplitStatusCancelled, now); err != nil {
		return nil, err
	}

	split.Status = domain.SplitStatusCancelled
	split.UpdatedAt = now

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   split.ID,
		AggregateType: domain.AggregateTypeSplit,
		EventType:     domain.EventTypeSplitCancelled,
		Payload: map[string]any{
			"split_id":   split.ID,
			"creator_id": split.CreatorID,
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

	split.Participants, err = uc.participantRepo.ListBySplit(ctx, split.ID)
	if err != nil {
		return nil, err
	}

	uc.invalidateBalances(ctx, split)

	return split, nil
}

// invalidateBalances drops cached balance summaries for everyone touched
// by a split change. Best effort: a stale cache entry expires on its own.
func (uc *SplitUseCase) invalidateBalances(ctx context.Context, split *domain.Split) {
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
