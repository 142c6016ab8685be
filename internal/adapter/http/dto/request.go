package dto

import (
	"github.com/shopspring/decimal"

	"github.com/mikey2shiesty/ZapSplit-sub002/internal/domain"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/usecase"
)

// CreateSplitRequest represents a request to create a split.
// Amounts is consulted for the custom strategy, Percentages for the
// percentage strategy. All monetary values are minor units.
type CreateSplitRequest struct {
	CreatorID      string                     `json:"creator_id"`
	Title          string                     `json:"title"`
	Description    string                     `json:"description,omitempty"`
	AmountCents    int64                      `json:"amount_cents"`
	Currency       string                     `json:"currency"`
	Strategy       string                     `json:"strategy"`
	ParticipantIDs []string                   `json:"participant_ids"`
	Amounts        map[string]int64           `json:"amounts,omitempty"`
	Percentages    map[string]decimal.Decimal `json:"percentages,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSplitRequest) ToUseCaseInput() usecase.CreateSplitInput {
	allocation := domain.AllocationInput{
		Percentages: r.Percentages,
	}
	if len(r.Amounts) > 0 {
		allocation.Amounts = make(map[string]domain.Money, len(r.Amounts))
		for id, cents := range r.Amounts {
			allocation.Amounts[id] = domain.NewMoney(cents, r.Currency)
		}
	}

	return usecase.CreateSplitInput{
		CreatorID:      r.CreatorID,
		Title:          r.Title,
		Description:    r.Description,
		Total:          domain.NewMoney(r.AmountCents, r.Currency),
		Strategy:       domain.AllocationStrategy(r.Strategy),
		ParticipantIDs: r.ParticipantIDs,
		Allocation:     allocation,
	}
}

// RecordPaymentRequest represents a payment event reported for a split.
// Exactly one of UserID and PayerIdentity must be set: UserID for a
// participant paying their share, PayerIdentity for an anonymous web
// payment.
type RecordPaymentRequest struct {
	UserID         string `json:"user_id,omitempty"`
	PayerIdentity  string `json:"payer_identity,omitempty"`
	AmountCents    int64  `json:"amount_cents"`
	Currency       string `json:"currency"`
	IdempotencyKey string `json:"idempotency_key"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordPaymentRequest) ToUseCaseInput(splitID string) usecase.RecordPaymentInput {
	return usecase.RecordPaymentInput{
		SplitID:        splitID,
		UserID:         r.UserID,
		PayerIdentity:  r.PayerIdentity,
		Amount:         domain.NewMoney(r.AmountCents, r.Currency),
		IdempotencyKey: r.IdempotencyKey,
	}
}

// CancelSplitRequest identifies who is asking for the cancellation.
type CancelSplitRequest struct {
	RequesterID string `json:"requester_id"`
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
