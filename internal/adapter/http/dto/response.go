package dto

import (
	"time"

	"github.com/mikey2shiesty/ZapSplit-sub002/internal/domain"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/usecase"
)

// SplitResponse represents a split in API responses.
type SplitResponse struct {
	ID           string                 `json:"id"`
	CreatorID    string                 `json:"creator_id"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description,omitempty"`
	AmountCents  int64                  `json:"amount_cents"`
	Currency     string                 `json:"currency"`
	Strategy     string                 `json:"strategy"`
	Status       string                 `json:"status"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
	Participants []*ParticipantResponse `json:"participants,omitempty"`
	Payments     []*PaymentResponse     `json:"payments,omitempty"`
}

// SplitFromDomain converts a domain split to a response.
func SplitFromDomain(s *domain.Split) *SplitResponse {
	resp := &SplitResponse{
		ID:          s.ID,
		CreatorID:   s.CreatorID,
		Title:       s.Title,
		Description: s.Description,
		AmountCents: s.Total.Cents,
		Currency:    s.Total.Currency,
		Strategy:    string(s.Strategy),
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	for _, p := range s.Participants {
		resp.Participants = append(resp.Participants, ParticipantFromDomain(p))
	}
	for _, p := range s.Payments {
		resp.Payments = append(resp.Payments, PaymentFromDomain(p))
	}
	return resp
}

// SplitsFromDomain converts domain splits to responses.
func SplitsFromDomain(splits []*domain.Split) []*SplitResponse {
	result := make([]*SplitResponse, len(splits))
	for i, s := range splits {
		result[i] = SplitFromDomain(s)
	}
	return result
}

// ParticipantResponse represents a participant in API responses.
type ParticipantResponse struct {
	UserID           string    `json:"user_id"`
	AmountOwedCents  int64     `json:"amount_owed_cents"`
	AmountPaidCents  int64     `json:"amount_paid_cents"`
	OutstandingCents int64     `json:"outstanding_cents"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// ParticipantFromDomain converts a domain participant to a response.
func ParticipantFromDomain(p *domain.Participant) *ParticipantResponse {
	return &ParticipantResponse{
		UserID:           p.UserID,
		AmountOwedCents:  p.AmountOwed.Cents,
		AmountPaidCents:  p.AmountPaid.Cents,
		OutstandingCents: p.Outstanding().Cents,
		Currency:         p.AmountOwed.Currency,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
	}
}

// PaymentResponse represents a recorded payment in API responses.
type PaymentResponse struct {
	ID             string    `json:"id"`
	SplitID        string    `json:"split_id"`
	ParticipantID  *string   `json:"participant_id,omitempty"`
	PayerIdentity  string    `json:"payer_identity,omitempty"`
	AmountCents    int64     `json:"amount_cents"`
	Currency       string    `json:"currency"`
	IdempotencyKey string    `json:"idempotency_key"`
	CreatedAt      time.Time `json:"created_at"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:             p.ID,
		SplitID:        p.SplitID,
		ParticipantID:  p.ParticipantID,
		PayerIdentity:  p.PayerIdentity,
		AmountCents:    p.Amount.Cents,
		Currency:       p.Amount.Currency,
		IdempotencyKey: p.IdempotencyKey,
		CreatedAt:      p.CreatedAt,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.Payment) []*PaymentResponse {
	result := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// SettlementResponse describes the outcome of recording a payment.
type SettlementResponse struct {
	Split          *SplitResponse   `json:"split"`
	Payment        *PaymentResponse `json:"payment,omitempty"`
	AppliedCents   int64            `json:"applied_cents"`
	RemainingCents int64            `json:"remaining_cents"`
	Completed      bool             `json:"completed"`
	Duplicate      bool             `json:"duplicate"`
}

// SettlementFromResult converts a settlement result to a response.
func SettlementFromResult(r *usecase.SettlementResult) *SettlementResponse {
	resp := &SettlementResponse{
		Split:          SplitFromDomain(r.Split),
		AppliedCents:   r.Applied.Cents,
		RemainingCents: r.Remaining.Cents,
		Completed:      r.Completed,
		Duplicate:      r.Duplicate,
	}
	if r.Payment != nil {
		resp.Payment = PaymentFromDomain(r.Payment)
	}
	return resp
}

// FeeQuoteResponse represents a fee breakdown in API responses.
type FeeQuoteResponse struct {
	AmountOwedCents   int64  `json:"amount_owed_cents"`
	ProcessorFeeCents int64  `json:"processor_fee_cents"`
	PlatformFeeCents  int64  `json:"platform_fee_cents"`
	TotalChargeCents  int64  `json:"total_charge_cents"`
	Currency          string `json:"currency"`
}

// FeeQuoteFromDomain converts a fee breakdown to a response.
func FeeQuoteFromDomain(b *domain.FeeBreakdown) *FeeQuoteResponse {
	return &FeeQuoteResponse{
		AmountOwedCents:   b.AmountOwed.Cents,
		ProcessorFeeCents: b.ProcessorFee.Cents,
		PlatformFeeCents:  b.PlatformFee.Cents,
		TotalChargeCents:  b.TotalCharge.Cents,
		Currency:          b.AmountOwed.Currency,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
