package domain

import (
	"fmt"
	"strings"
)

// Validation errors
var (
	ErrInvalidTitle    = fmt.Errorf("invalid split title")
	ErrInvalidCurrency = fmt.Errorf("invalid currency code")
	ErrInvalidUserID   = fmt.Errorf("invalid user id")
	ErrMissingIdemKey  = fmt.Errorf("idempotency key is required")
	ErrIdemKeyTooLong  = fmt.Errorf("idempotency key too long")
	ErrTitleTooLong    = fmt.Errorf("split title too long")
	ErrAmountTooLarge  = fmt.Errorf("amount exceeds maximum allowed")
	ErrMissingPayer    = fmt.Errorf("payment requires a participant or a payer identity")
	ErrAmbiguousPayer  = fmt.Errorf("payment cannot name both a participant and a payer identity")
)

// Validation constants
const (
	MaxTitleLength          = 255
	MaxIdempotencyKeyLength = 128
	MaxAmountCents          = int64(1_000_000_000_00) // one billion major units
)

// Valid currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "CHF": true,
	"SEK": true, "NZD": true, "KRW": true, "SGD": true,
	"NOK": true, "MXN": true, "INR": true, "BRL": true,
	"ZAR": true, "RUB": true, "TRY": true, "HKD": true,
}

// ValidateTitle validates a split title.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)

	if title == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidTitle)
	}

	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrTitleTooLong, MaxTitleLength)
	}

	return nil
}

// ValidateCurrency validates a currency code.
func ValidateCurrency(currency string) error {
	if !validCurrencies[strings.ToUpper(strings.TrimSpace(currency))] {
		return fmt.Errorf("%w: %s is not a valid ISO 4217 currency code", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidateUserID validates a user identifier.
func ValidateUserID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidUserID)
	}

	return nil
}

// ValidateAmount validates a caller-supplied money amount.
func ValidateAmount(m Money) error {
	if !m.IsPositive() {
		return ErrInvalidAmount
	}

	if m.Cents > MaxAmountCents {
		return fmt.Errorf("%w: maximum is %d minor units", ErrAmountTooLarge, MaxAmountCents)
	}

	return ValidateCurrency(m.Currency)
}

// ValidateIdempotencyKey validates a payment event's idempotency key.
func ValidateIdempotencyKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrMissingIdemKey
	}

	if len(key) > MaxIdempotencyKeyLength {
		return fmt.Errorf("%w: maximum is %d characters", ErrIdemKeyTooLong, MaxIdempotencyKeyLength)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
