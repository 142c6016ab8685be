package usecase

import (
	"context"
	"fmt"

	"github.com/mikey2shiesty/ZapSplit-sub002/internal/domain"
)

// FeeUseCase quotes collection fees against the configured schedule.
type FeeUseCase struct {
	schedule domain.FeeSchedule
}

// NewFeeUseCase creates a new FeeUseCase.
func NewFeeUseCase(schedule domain.FeeSchedule) *FeeUseCase {
	return &FeeUseCase{schedule: schedule}
}

// QuoteFeeInput represents input for a fee quote.
type QuoteFeeInput struct {
	AmountOwed       domain.Money
	ParticipantCount int
}

// QuoteFee returns the fee breakdown for one participant's share.
func (uc *FeeUseCase) QuoteFee(ctx context.Context, input QuoteFeeInput) (*domain.FeeBreakdown, error) {
	if err := domain.ValidateAmount(input.AmountOwed); err != nil {
		return nil, err
	}

	if input.ParticipantCount < 1 {
		return nil, fmt.Errorf("%w: participant count %d", domain.ErrInsufficientParticipants, input.ParticipantCount)
	}

	breakdown := domain.ApportionFee(input.AmountOwed, input.ParticipantCount, uc.schedule)

	return &breakdown, nil
}

// Schedule returns the active fee schedule.
func (uc *FeeUseCase) Schedule() domain.FeeSchedule {
	return uc.schedule
}
