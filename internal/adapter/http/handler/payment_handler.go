package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mikey2shiesty/ZapSplit-sub002/internal/adapter/http/dto"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/usecase"
)

// SettlementService defines the behavior needed by PaymentHandler.
type SettlementService interface {
	RecordPayment(ctx context.Context, input usecase.RecordPaymentInput) (*usecase.SettlementResult, error)
}

// PaymentHandler handles payment-related HTTP requests.
type PaymentHandler struct {
	settlementUC SettlementService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(settlementUC SettlementService) *PaymentHandler {
	return &PaymentHandler{settlementUC: settlementUC}
}

// Record records a payment against a split. Replays of an already
// recorded idempotency key return 200 with the current state instead
// of 201.
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	splitID := chi.URLParam(r, "id")
	if splitID == "" {
		writeError(w, http.StatusBadRequest, "missing split ID", "")
		return
	}

	var req dto.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.settlementUC.RecordPayment(r.Context(), req.ToUseCaseInput(splitID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to record payment", err.Error())

		return
	}

	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
	}

	writeJSON(w, status, dto.SettlementFromResult(result))
}
