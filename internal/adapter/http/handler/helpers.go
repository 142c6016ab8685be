package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mikey2shiesty/ZapSplit-sub002/internal/adapter/http/dto"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	// ErrSplitNotFound and ErrParticipantNotFound wrap ErrUnknownReference,
	// so one check covers the whole reference family.
	case errors.Is(err, domain.ErrUnknownReference):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSplitNotActive):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDuplicatePayment):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotCreator):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrInsufficientParticipants),
		errors.Is(err, domain.ErrDuplicateParticipant),
		errors.Is(err, domain.ErrCreatorNotParticipant),
		errors.Is(err, domain.ErrAmountMismatch),
		errors.Is(err, domain.ErrIncompleteAllocation),
		errors.Is(err, domain.ErrPercentageMismatch),
		errors.Is(err, domain.ErrCurrencyMismatch),
		errors.Is(err, domain.ErrInvalidTitle),
		errors.Is(err, domain.ErrTitleTooLong),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrMissingIdemKey),
		errors.Is(err, domain.ErrIdemKeyTooLong),
		errors.Is(err, domain.ErrMissingPayer),
		errors.Is(err, domain.ErrAmbiguousPayer):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseInt64Query parses an int64 query parameter with a default value.
func parseInt64Query(r *http.Request, key string, defaultValue int64) int64 {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return defaultValue
	}
	return i
}
