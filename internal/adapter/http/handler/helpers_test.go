package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/mikey2shiesty/ZapSplit-sub002/internal/adapter/http/dto"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/splits?limit=50", nil)
	if got := parseIntQuery(req, "limit", 10); got != 50 {
		t.Fatalf("expected limit=50, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/splits?limit=invalid", nil)
	if got := parseIntQuery(req, "limit", 10); got != 10 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "limit", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestParseInt64Query(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/fees/quote?amount_cents=12345", nil)
	if got := parseInt64Query(req, "amount_cents", 0); got != 12345 {
		t.Fatalf("expected 12345, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/fees/quote?amount_cents=nope", nil)
	if got := parseInt64Query(req, "amount_cents", 7); got != 7 {
		t.Fatalf("expected fallback to default, got %d", got)
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"split not found", domain.ErrSplitNotFound, http.StatusNotFound},
		{"participant not found", domain.ErrParticipantNotFound, http.StatusNotFound},
		{"split not active", domain.ErrSplitNotActive, http.StatusConflict},
		{"not creator", domain.ErrNotCreator, http.StatusForbidden},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"too few participants", domain.ErrInsufficientParticipants, http.StatusBadRequest},
		{"amounts do not sum", domain.ErrAmountMismatch, http.StatusBadRequest},
		{"currency mismatch", domain.ErrCurrencyMismatch, http.StatusBadRequest},
		{"missing idempotency key", domain.ErrMissingIdemKey, http.StatusBadRequest},
		{"ambiguous payer", domain.ErrAmbiguousPayer, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad request", "detail")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "bad request" {
		t.Fatalf("expected error message to propagate, got %+v", resp)
	}
}
