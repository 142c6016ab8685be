package domain

import "time"

// AllocationStrategy is the rule used to divide a split's total.
type AllocationStrategy string

const (
	StrategyEqual      AllocationStrategy = "equal"
	StrategyCustom     AllocationStrategy = "custom"
	StrategyPercentage AllocationStrategy = "percentage"
)

// Valid reports whether the strategy is one of the known values.
func (s AllocationStrategy) Valid() bool {
	switch s {
	case StrategyEqual, StrategyCustom, StrategyPercentage:
		return true
	}
	return false
}

// SplitStatus is the lifecycle state of a split.
type SplitStatus string

const (
	SplitStatusActive    SplitStatus = "active"
	SplitStatusCompleted SplitStatus = "completed"
	SplitStatusCancelled SplitStatus = "cancelled"
)

// ParticipantStatus is the settlement state of one participant.
// pending -> paid is the only transition and paid is terminal.
type ParticipantStatus string

const (
	ParticipantStatusPending ParticipantStatus = "pending"
	ParticipantStatusPaid    ParticipantStatus = "paid"
)

// Split represents one shared expense divided among participants.
// Structural fields are owned by the creator; participant payment
// state is mutated only through settlement.
type Split struct {
	ID           string
	CreatorID    string
	Title        string
	Description  string
	Total        Money
	Strategy     AllocationStrategy
	Status       SplitStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Participants []*Participant
	Payments     []*Payment
}

// Participant is one person's stake in a split. Rows are created
// atomically with the split and never deleted.
type Participant struct {
	SplitID    string
	UserID     string
	AmountOwed Money
	AmountPaid Money
	Status     ParticipantStatus
	CreatedAt  time.Time
}

// Outstanding returns how much the participant still owes.
func (p *Participant) Outstanding() Money {
	return p.AmountOwed.Sub(p.AmountPaid)
}

// ApplyPayment adds amount to the participant's paid total, clamped so
// AmountPaid never exceeds AmountOwed, and flips status to paid when
// the obligation is fully covered. It returns the amount actually
// applied; the raw payment is recorded separately for audit. A paid
// participant never regresses, so applying to one is a no-op.
func (p *Participant) ApplyPayment(amount Money) Money {
	if p.Status == ParticipantStatusPaid {
		return amount.Zero()
	}

	applied := amount.Min(p.Outstanding())
	p.AmountPaid = p.AmountPaid.Add(applied)
	if p.AmountPaid.Equal(p.AmountOwed) {
		p.Status = ParticipantStatusPaid
	}

	return applied
}

// TotalPaid sums participant payments (clamped) and web payments
// across both collection channels.
func (s *Split) TotalPaid() Money {
	total := s.Total.Zero()
	for _, p := range s.Participants {
		total = total.Add(p.AmountPaid)
	}
	for _, pay := range s.Payments {
		if pay.IsWeb() {
			total = total.Add(pay.Amount)
		}
	}
	return total
}

// AmountRemaining is the split total minus everything collected,
// floored at zero. It is always computed, never stored, so the two
// payment channels can never drift apart.
func (s *Split) AmountRemaining() Money {
	remaining := s.Total.Sub(s.TotalPaid())
	if remaining.IsNegative() {
		return s.Total.Zero()
	}
	return remaining
}

// IsSettled reports whether the split has been fully collected.
func (s *Split) IsSettled() bool {
	return s.AmountRemaining().IsZero()
}

// ParticipantFor returns the participant row for a user, if any.
func (s *Split) ParticipantFor(userID string) *Participant {
	for _, p := range s.Participants {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}
