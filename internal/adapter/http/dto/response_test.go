package dto

import (
	"testing"
	"time"

	"github.com/mikey2shiesty/ZapSplit-sub002/internal/domain"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/usecase"
)

func TestSplitFromDomain(t *testing.T) {
	now := time.Now()
	participantID := "bob"
	split := &domain.Split{
		ID:        "s-1",
		CreatorID: "alice",
		Title:     "Dinner",
		Total:     domain.NewMoney(10000, "USD"),
		Strategy:  domain.StrategyEqual,
		Status:    domain.SplitStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
		Participants: []*domain.Participant{
			{
				SplitID:    "s-1",
				UserID:     "bob",
				AmountOwed: domain.NewMoney(5000, "USD"),
				AmountPaid: domain.NewMoney(2000, "USD"),
				Status:     domain.ParticipantStatusPending,
				CreatedAt:  now,
			},
		},
		Payments: []*domain.Payment{
			{
				ID:             "p-1",
				SplitID:        "s-1",
				ParticipantID:  &participantID,
				Amount:         domain.NewMoney(2000, "USD"),
				IdempotencyKey: "k-1",
				CreatedAt:      now,
			},
		},
	}

	resp := SplitFromDomain(split)

	if resp.ID != "s-1" || resp.AmountCents != 10000 || resp.Currency != "USD" {
		t.Fatalf("unexpected split response: %+v", resp)
	}
	if len(resp.Participants) != 1 || resp.Participants[0].OutstandingCents != 3000 {
		t.Fatalf("expected outstanding to be derived, got %+v", resp.Participants)
	}
	if len(resp.Payments) != 1 || resp.Payments[0].ParticipantID == nil {
		t.Fatalf("unexpected payments: %+v", resp.Payments)
	}

	list := SplitsFromDomain([]*domain.Split{split})
	if len(list) != 1 || list[0].ID != "s-1" {
		t.Fatalf("SplitsFromDomain returned %+v", list)
	}
}

func TestSettlementFromResult(t *testing.T) {
	split := &domain.Split{
		ID:     "s-1",
		Total:  domain.NewMoney(10000, "USD"),
		Status: domain.SplitStatusCompleted,
	}

	resp := SettlementFromResult(&usecase.SettlementResult{
		Split:     split,
		Applied:   domain.NewMoney(3333, "USD"),
		Remaining: domain.NewMoney(0, "USD"),
		Completed: true,
	})

	if resp.AppliedCents != 3333 || resp.RemainingCents != 0 || !resp.Completed {
		t.Fatalf("unexpected settlement response: %+v", resp)
	}
	if resp.Payment != nil {
		t.Fatalf("expected no payment when result has none, got %+v", resp.Payment)
	}
}

func TestFeeQuoteFromDomain(t *testing.T) {
	resp := FeeQuoteFromDomain(&domain.FeeBreakdown{
		AmountOwed:   domain.NewMoney(2500, "USD"),
		ProcessorFee: domain.NewMoney(80, "USD"),
		PlatformFee:  domain.NewMoney(13, "USD"),
		TotalCharge:  domain.NewMoney(2593, "USD"),
	})

	if resp.TotalChargeCents != 2593 || resp.ProcessorFeeCents != 80 || resp.Currency != "USD" {
		t.Fatalf("unexpected fee quote: %+v", resp)
	}
}
