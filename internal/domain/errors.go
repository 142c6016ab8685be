package domain

import (
	"errors"
	"fmt"
)

var (
	// Allocation errors - always caller-correctable.
	ErrInvalidAmount            = errors.New("amount must be positive")
	ErrInsufficientParticipants = errors.New("a split needs at least two participants")
	ErrDuplicateParticipant     = errors.New("duplicate participant")
	ErrAmountMismatch           = errors.New("custom amounts do not sum to the split total")
	ErrIncompleteAllocation     = errors.New("allocation input is missing a participant")
	ErrPercentageMismatch       = errors.New("percentages do not sum to 100")
	ErrCurrencyMismatch         = errors.New("currency does not match the split")

	// Reference errors - stale or malformed payment events. The
	// specific errors wrap ErrUnknownReference so callers can match
	// the whole family with one errors.Is.
	ErrUnknownReference    = errors.New("unknown split or participant reference")
	ErrSplitNotFound       = fmt.Errorf("%w: split not found", ErrUnknownReference)
	ErrParticipantNotFound = fmt.Errorf("%w: participant not found", ErrUnknownReference)

	// Settlement errors.
	ErrDuplicatePayment      = errors.New("payment already recorded for this idempotency key")
	ErrSplitNotActive        = errors.New("split is not active")
	ErrNotCreator            = errors.New("only the split creator may do this")
	ErrCreatorNotParticipant = errors.New("creator must be a participant in the split")

	// Money contract errors.
	ErrNonIntegerAmount = errors.New("amount is not an integer number of minor units")

	// Auth errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
