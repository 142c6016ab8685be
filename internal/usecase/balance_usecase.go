package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/mikey2shiesty/ZapSplit-sub002/internal/domain"
)

// CurrencyBalance is one currency's slice of a user's balance summary.
// Positive NetCents means the user is owed more than they owe.
type CurrencyBalance struct {
	Currency    string `json:"currency"`
	OwedCents   int64  `json:"owed_cents"`
	OwedToCents int64  `json:"owed_to_cents"`
	NetCents    int64  `json:"net_cents"`
}

// BalanceSummary aggregates a user's position across all active splits.
type BalanceSummary struct {
	UserID     string            `json:"user_id"`
	Balances   []CurrencyBalance `json:"balances"`
	ComputedAt time.Time         `json:"computed_at"`
}

// BalanceUseCase computes balance summaries with read-through caching.
type BalanceUseCase struct {
	balanceRepo BalanceRepository
	cache       Cache
	cacheTTL    time.Duration
}

// NewBalanceUseCase creates a new BalanceUseCase. Cache may be nil.
func NewBalanceUseCase(balanceRepo BalanceRepository, cache Cache, cacheTTL time.Duration) *BalanceUseCase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultBalanceCacheTTL
	}

	return &BalanceUseCase{
		balanceRepo: balanceRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// GetBalance returns the user's per-currency balance summary.
func (uc *BalanceUseCase) GetBalance(ctx context.Context, userID string) (*BalanceSummary, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, balanceCacheKey(userID)); err == nil && data != nil {
			var summary BalanceSummary
			if err := json.Unmarshal(data, &summary); err == nil {
				return &summary, nil
			}
		}
	}

	owed, err := uc.balanceRepo.OwedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	owedTo, err := uc.balanceRepo.OwedToUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &BalanceSummary{
		UserID:     userID,
		Balances:   mergeBalances(owed, owedTo),
		ComputedAt: time.Now().UTC(),
	}

	if uc.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			_ = uc.cache.Set(ctx, balanceCacheKey(userID), data, uc.cacheTTL)
		}
	}

	return summary, nil
}

// mergeBalances folds the two per-currency maps into a sorted slice.
func mergeBalances(owed, owedTo map[string]int64) []CurrencyBalance {
	currencies := make(map[string]bool, len(owed)+len(owedTo))
	for c := range owed {
		currencies[c] = true
	}
	for c := range owedTo {
		currencies[c] = true
	}

	balances := make([]CurrencyBalance, 0, len(currencies))
	for c := range currencies {
		balances = append(balances, CurrencyBalance{
			Currency:    c,
			OwedCents:   owed[c],
			OwedToCents: owedTo[c],
			NetCents:    owedTo[c] - owed[c],
		})
	}

	sort.Slice(balances, func(i, j int) bool { return balances[i].Currency < balances[j].Currency })

	return balances
}

func balanceCacheKey(userID string) string {
	return "balance:" + userID
}
