package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func pct(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAllocate_Equal(t *testing.T) {
	total := NewMoney(10000, "AUD") // $100.00
	ids := []string{"alice", "bob", "carol"}

	participants, err := Allocate(total, ids, StrategyEqual, AllocationInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCents := []int64{3334, 3333, 3333}
	var sum int64
	for i, p := range participants {
		if p.UserID != ids[i] {
			t.Errorf("participant %d: expected %s, got %s", i, ids[i], p.UserID)
		}
		if p.AmountOwed.Cents != wantCents[i] {
			t.Errorf("participant %s: expected %d cents, got %d", p.UserID, wantCents[i], p.AmountOwed.Cents)
		}
		if p.Status != ParticipantStatusPending {
			t.Errorf("participant %s: expected pending, got %s", p.UserID, p.Status)
		}
		if !p.AmountPaid.IsZero() {
			t.Errorf("participant %s: expected zero paid, got %d", p.UserID, p.AmountPaid.Cents)
		}
		sum += p.AmountOwed.Cents
	}

	if sum != 10000 {
		t.Errorf("shares sum to %d, expected 10000", sum)
	}
}

func TestAllocate_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		total   Money
		ids     []string
		wantErr error
	}{
		{
			name:    "zero total",
			total:   NewMoney(0, "USD"),
			ids:     []string{"a", "b"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative total",
			total:   NewMoney(-100, "USD"),
			ids:     []string{"a", "b"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "creator alone",
			total:   NewMoney(100, "USD"),
			ids:     []string{"a"},
			wantErr: ErrInsufficientParticipants,
		},
		{
			name:    "no participants",
			total:   NewMoney(100, "USD"),
			ids:     nil,
			wantErr: ErrInsufficientParticipants,
		},
		{
			name:    "duplicate participant",
			total:   NewMoney(100, "USD"),
			ids:     []string{"a", "b", "a"},
			wantErr: ErrDuplicateParticipant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Allocate(tt.total, tt.ids, StrategyEqual, AllocationInput{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAllocate_Custom(t *testing.T) {
	total := NewMoney(10000, "USD")
	ids := []string{"a", "b", "c"}

	tests := []struct {
		name    string
		amounts map[string]Money
		wantErr error
	}{
		{
			name: "exact sum succeeds",
			amounts: map[string]Money{
				"a": NewMoney(5000, "USD"),
				"b": NewMoney(3000, "USD"),
				"c": NewMoney(2000, "USD"),
			},
		},
		{
			name: "one cent short",
			amounts: map[string]Money{
				"a": NewMoney(5000, "USD"),
				"b": NewMoney(3000, "USD"),
				"c": NewMoney(1999, "USD"),
			},
			wantErr: ErrAmountMismatch,
		},
		{
			name: "one cent over",
			amounts: map[string]Money{
				"a": NewMoney(5000, "USD"),
				"b": NewMoney(3000, "USD"),
				"c": NewMoney(2001, "USD"),
			},
			wantErr: ErrAmountMismatch,
		},
		{
			name: "missing participant entry",
			amounts: map[string]Money{
				"a": NewMoney(5000, "USD"),
				"b": NewMoney(5000, "USD"),
			},
			wantErr: ErrIncompleteAllocation,
		},
		{
			name: "wrong currency",
			amounts: map[string]Money{
				"a": NewMoney(5000, "USD"),
				"b": NewMoney(3000, "EUR"),
				"c": NewMoney(2000, "USD"),
			},
			wantErr: ErrCurrencyMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			participants, err := Allocate(total, ids, StrategyCustom, AllocationInput{Amounts: tt.amounts})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for _, p := range participants {
				if !p.AmountOwed.Equal(tt.amounts[p.UserID]) {
					t.Errorf("participant %s: expected %s, got %s", p.UserID, tt.amounts[p.UserID], p.AmountOwed)
				}
			}
		})
	}
}

func TestAllocate_Percentage(t *testing.T) {
	// $50.00 at {33.33, 33.33, 33.34} rounds to
	// [1666, 1666, 1667] = 4999; the missing cent lands on the
	// largest share.
	total := NewMoney(5000, "USD")
	ids := []string{"a", "b", "c"}

	participants, err := Allocate(total, ids, StrategyPercentage, AllocationInput{
		Percentages: map[string]decimal.Decimal{
			"a": pct("33.33"),
			"b": pct("33.33"),
			"c": pct("33.34"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCents := []int64{1666, 1666, 1668}
	var sum int64
	for i, p := range participants {
		if p.AmountOwed.Cents != wantCents[i] {
			t.Errorf("participant %s: expected %d cents, got %d", p.UserID, wantCents[i], p.AmountOwed.Cents)
		}
		sum += p.AmountOwed.Cents
	}

	if sum != 5000 {
		t.Errorf("shares sum to %d, expected 5000", sum)
	}
}

func TestAllocate_PercentageErrors(t *testing.T) {
	total := NewMoney(10000, "USD")
	ids := []string{"a", "b"}

	tests := []struct {
		name        string
		percentages map[string]decimal.Decimal
		wantErr     error
	}{
		{
			name: "within tolerance succeeds",
			percentages: map[string]decimal.Decimal{
				"a": pct("50"),
				"b": pct("49.99"),
			},
		},
		{
			name: "sum off by more than tolerance",
			percentages: map[string]decimal.Decimal{
				"a": pct("50"),
				"b": pct("49.98"),
			},
			wantErr: ErrPercentageMismatch,
		},
		{
			name: "missing entry",
			percentages: map[string]decimal.Decimal{
				"a": pct("100"),
			},
			wantErr: ErrIncompleteAllocation,
		},
		{
			name: "negative percentage",
			percentages: map[string]decimal.Decimal{
				"a": pct("110"),
				"b": pct("-10"),
			},
			wantErr: ErrPercentageMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			participants, err := Allocate(total, ids, StrategyPercentage, AllocationInput{Percentages: tt.percentages})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var sum int64
			for _, p := range participants {
				sum += p.AmountOwed.Cents
			}
			if sum != total.Cents {
				t.Errorf("shares sum to %d, expected %d", sum, total.Cents)
			}
		})
	}
}

func TestAllocate_PercentageSumAlwaysExact(t *testing.T) {
	// Rounding may push individual shares around but the corrected sum
	// must always equal the total exactly.
	totals := []int64{1, 99, 101, 4999, 5000, 10000, 99999}
	percentages := map[string]decimal.Decimal{
		"a": pct("33.33"),
		"b": pct("33.33"),
		"c": pct("33.34"),
	}

	for _, cents := range totals {
		participants, err := Allocate(NewMoney(cents, "AUD"), []string{"a", "b", "c"}, StrategyPercentage, AllocationInput{Percentages: percentages})
		if err != nil {
			t.Fatalf("total %d: unexpected error: %v", cents, err)
		}

		var sum int64
		for _, p := range participants {
			sum += p.AmountOwed.Cents
		}
		if sum != cents {
			t.Errorf("total %d: shares sum to %d", cents, sum)
		}
	}
}

func TestAllocate_UnknownStrategy(t *testing.T) {
	_, err := Allocate(NewMoney(100, "USD"), []string{"a", "b"}, AllocationStrategy("weighted"), AllocationInput{})
	if err == nil {
		t.Fatal("expected error for unknown strategy, got nil")
	}
}
