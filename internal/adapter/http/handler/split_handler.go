package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mikey2shiesty/ZapSplit-sub002/internal/adapter/http/dto"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/domain"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/usecase"
)

// SplitService defines the behavior needed by SplitHandler.
type SplitService interface {
	CreateSplit(ctx context.Context, input usecase.CreateSplitInput) (*domain.Split, error)
	GetSplit(ctx context.Context, id string) (*domain.Split, error)
	ListSplitsByUser(ctx context.Context, input usecase.ListSplitsByUserInput) ([]*domain.Split, error)
	ListPayments(ctx context.Context, splitID string) ([]*domain.Payment, error)
	CancelSplit(ctx context.Context, splitID, requesterID string) (*domain.Split, error)
}

// SplitHandler handles split-related HTTP requests.
type SplitHandler struct {
	splitUC SplitService
}

// NewSplitHandler creates a new SplitHandler.
func NewSplitHandler(splitUC SplitService) *SplitHandler {
	return &SplitHandler{splitUC: splitUC}
}

// Create creates a new split.
func (h *SplitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	split, err := h.splitUC.CreateSplit(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create split", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.SplitFromDomain(split))
}

// Get retrieves a split by ID, with participants and payments.
func (h *SplitHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing split ID", "")
		return
	}

	split, err := h.splitUC.GetSplit(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get split", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SplitFromDomain(split))
}

// ListByUser lists splits the user created or participates in.
func (h *SplitHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	splits, err := h.splitUC.ListSplitsByUser(r.Context(), usecase.ListSplitsByUserInput{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list splits", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SplitsFromDomain(splits))
}

// ListPayments lists the payment audit trail for a split.
func (h *SplitHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing split ID", "")
		return
	}

	payments, err := h.splitUC.ListPayments(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list payments", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentsFromDomain(payments))
}

// Cancel cancels an active split. Only the creator may cancel.
func (h *SplitHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing split ID", "")
		return
	}

	var req dto.CancelSplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	split, err := h.splitUC.CancelSplit(r.Context(), id, req.RequesterID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to cancel split", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SplitFromDomain(split))
}
