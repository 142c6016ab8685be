package domain

import "time"

// Payment is one successful charge reported by the payment collaborator,
// retained verbatim for audit. ParticipantID is nil for web payments:
// someone paid a share through a shareable link without ever holding a
// participant row. The (SplitID, IdempotencyKey) pair is unique so an
// at-least-once webhook can never double-count.
type Payment struct {
	ID             string
	SplitID        string
	ParticipantID  *string
	PayerIdentity  string
	Amount         Money
	IdempotencyKey string
	CreatedAt      time.Time
}

// IsWeb reports whether the payment arrived through the anonymous web
// channel rather than from a participant.
func (p *Payment) IsWeb() bool {
	return p.ParticipantID == nil
}

// Validate validates a payment event before it is applied.
func (p *Payment) Validate() error {
	if !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}
