package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// percentageTolerance is how far a set of user-typed percentages may
// deviate from 100. Percentages are typed decimals, unlike custom
// amounts which are already exact money and get zero tolerance.
var percentageTolerance = decimal.NewFromFloat(0.01)

var oneHundred = decimal.NewFromInt(100)

// AllocationInput carries the per-strategy inputs for Allocate.
// Amounts is consulted for the custom strategy, Percentages for the
// percentage strategy; equal needs neither.
type AllocationInput struct {
	Amounts     map[string]Money
	Percentages map[string]decimal.Decimal
}

// Allocate divides total among participantIDs according to strategy and
// returns one participant row per ID, in input order, all pending. The
// returned amounts always sum exactly to total.
func Allocate(total Money, participantIDs []string, strategy AllocationStrategy, input AllocationInput) ([]*Participant, error) {
	if !total.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if len(participantIDs) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientParticipants, len(participantIDs))
	}

	seen := make(map[string]bool, len(participantIDs))
	for _, id := range participantIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, id)
		}
		seen[id] = true
	}

	var (
		amounts []Money
		err     error
	)

	switch strategy {
	case StrategyEqual:
		amounts = total.Divide(len(participantIDs))
	case StrategyCustom:
		amounts, err = allocateCustom(total, participantIDs, input.Amounts)
	case StrategyPercentage:
		amounts, err = allocatePercentage(total, participantIDs, input.Percentages)
	default:
		return nil, fmt.Errorf("unknown allocation strategy %q", strategy)
	}

	if err != nil {
		return nil, err
	}

	participants := make([]*Participant, len(participantIDs))
	for i, id := range participantIDs {
		participants[i] = &Participant{
			UserID:     id,
			AmountOwed: amounts[i],
			AmountPaid: total.Zero(),
			Status:     ParticipantStatusPending,
		}
	}

	return participants, nil
}

// allocateCustom takes caller-supplied exact amounts. Every participant
// must have an entry, including the creator, and the sum must equal the
// total to the cent: this is money, not an estimate.
func allocateCustom(total Money, ids []string, amounts map[string]Money) ([]Money, error) {
	shares := make([]Money, len(ids))
	sum := total.Zero()

	for i, id := range ids {
		amount, ok := amounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: no amount for %s", ErrIncompleteAllocation, id)
		}
		if amount.Currency != total.Currency {
			return nil, fmt.Errorf("%w: %s amount is %s, split is %s", ErrCurrencyMismatch, id, amount.Currency, total.Currency)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, id)
		}

		shares[i] = amount
		sum = sum.Add(amount)
	}

	if !sum.Equal(total) {
		return nil, fmt.Errorf("%w: amounts sum to %s, total is %s", ErrAmountMismatch, sum, total)
	}

	return shares, nil
}

// allocatePercentage converts per-participant percentages to amounts
// with bankers rounding, then corrects any residual cent against the
// largest share so the sum-equals-total invariant holds exactly.
func allocatePercentage(total Money, ids []string, percentages map[string]decimal.Decimal) ([]Money, error) {
	shares := make([]Money, len(ids))
	pctSum := decimal.Zero

	for i, id := range ids {
		pct, ok := percentages[id]
		if !ok {
			return nil, fmt.Errorf("%w: no percentage for %s", ErrIncompleteAllocation, id)
		}
		if pct.IsNegative() || pct.GreaterThan(oneHundred) {
			return nil, fmt.Errorf("%w: %s has %s%%", ErrPercentageMismatch, id, pct)
		}

		shares[i] = total.Percentage(pct)
		pctSum = pctSum.Add(pct)
	}

	if pctSum.Sub(oneHundred).Abs().GreaterThan(percentageTolerance) {
		return nil, fmt.Errorf("%w: sum is %s", ErrPercentageMismatch, pctSum)
	}

	residual := total.Sub(SumMoney(total.Currency, shares))
	if !residual.IsZero() {
		largest := 0
		for i := range shares {
			if shares[i].Cents > shares[largest].Cents {
				largest = i
			}
		}
		shares[largest] = shares[largest].Add(residual)
	}

	return shares, nil
}
