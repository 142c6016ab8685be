package handler

import (
	"context"
	"net/http"

	"github.com/mikey2shiesty/ZapSplit-sub002/internal/adapter/http/dto"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/domain"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/usecase"
)

// FeeService defines the behavior needed by FeeHandler.
type FeeService interface {
	QuoteFee(ctx context.Context, input usecase.QuoteFeeInput) (*domain.FeeBreakdown, error)
}

// FeeHandler handles fee quote requests.
type FeeHandler struct {
	feeUC FeeService
}

// NewFeeHandler creates a new FeeHandler.
func NewFeeHandler(feeUC FeeService) *FeeHandler {
	return &FeeHandler{feeUC: feeUC}
}

// Quote returns the fee breakdown for settling one share. Amounts are
// minor units; nothing is persisted.
func (h *FeeHandler) Quote(w http.ResponseWriter, r *http.Request) {
	amountCents := parseInt64Query(r, "amount_cents", 0)
	currency := r.URL.Query().Get("currency")
	if currency == "" {
		currency = "USD"
	}
	participants := parseIntQuery(r, "participants", 0)

	breakdown, err := h.feeUC.QuoteFee(r.Context(), usecase.QuoteFeeInput{
		AmountOwed:       domain.NewMoney(amountCents, currency),
		ParticipantCount: participants,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to quote fee", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.FeeQuoteFromDomain(breakdown))
}
