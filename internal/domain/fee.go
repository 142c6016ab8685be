package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FeeSchedule describes the processor's pricing plus the platform fee.
// The processor charges a percentage of the amount plus a fixed cut per
// transaction; the platform adds a flat fee.
type FeeSchedule struct {
	ProcessorRate  decimal.Decimal // e.g. 0.029 for 2.9%
	ProcessorFixed int64           // minor units per transaction
	PlatformFee    int64           // minor units per transaction
}

// FeeBreakdown is what one payer is charged for settling their share.
// It is advisory: nothing is persisted until a payment event arrives.
type FeeBreakdown struct {
	AmountOwed   Money
	ProcessorFee Money
	PlatformFee  Money
	TotalCharge  Money
}

// ApportionFee computes a payer's total charge for settling amountOwed.
// The processor fee is computed on the owed amount, then both fee pools
// are divided evenly across all participants with the remainder-safe
// Divide: every participant subsidizes the receiver's cost of
// collecting, not just the payer. The payer is charged the first share
// of each pool. participantCount < 1 is a contract violation.
func ApportionFee(amountOwed Money, participantCount int, schedule FeeSchedule) FeeBreakdown {
	if participantCount < 1 {
		panic(fmt.Sprintf("fee: apportion across %d participants", participantCount))
	}

	processorCents := decimal.NewFromInt(amountOwed.Cents).
		Mul(schedule.ProcessorRate).
		RoundBank(0).
		IntPart() + schedule.ProcessorFixed

	processorPool := NewMoney(processorCents, amountOwed.Currency)
	platformPool := NewMoney(schedule.PlatformFee, amountOwed.Currency)

	processorShare := processorPool.Divide(participantCount)[0]
	platformShare := platformPool.Divide(participantCount)[0]

	return FeeBreakdown{
		AmountOwed:   amountOwed,
		ProcessorFee: processorShare,
		PlatformFee:  platformShare,
		TotalCharge:  amountOwed.Add(processorShare).Add(platformShare),
	}
}
