package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"libraryapi/internal/auth"
	"libraryapi/internal/catalog"
	"libraryapi/internal/httpx"
	"libraryapi/internal/inventory"
	"libraryapi/internal/loan"
	"libraryapi/internal/member"
	"libraryapi/internal/penalty"
	"libraryapi/internal/settings"
)

// writeDomainError maps core errors onto stable HTTP codes. Anything
// unrecognized is an internal error and gets logged with the request id.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, inventory.ErrOutOfStock):
		httpx.JSONError(w, r, http.StatusConflict, "OUT_OF_STOCK", "No copies available", nil)
	case errors.Is(err, loan.ErrMemberSuspended):
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "MEMBER_SUSPENDED", "Member is suspended", nil)
	case errors.Is(err, loan.ErrPenaltyHold):
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "PENALTY_HOLD", "Member has unpaid penalties above the hold threshold", nil)
	case errors.Is(err, loan.ErrLoanLimit):
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "LOAN_LIMIT", "Member already holds the maximum number of books", nil)
	case errors.Is(err, loan.ErrAlreadyReturned):
		httpx.JSONError(w, r, http.StatusConflict, "ALREADY_RETURNED", "Loan already returned", nil)
	case errors.Is(err, penalty.ErrAlreadyPaid):
		httpx.JSONError(w, r, http.StatusConflict, "ALREADY_PAID", "Penalty already paid", nil)
	case errors.Is(err, penalty.ErrAmountMismatch):
		httpx.JSONError(w, r, http.StatusConflict, "AMOUNT_MISMATCH", "Payment must match the penalty amount exactly", nil)
	case errors.Is(err, inventory.ErrInvalidAdjust):
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "INVALID_ADJUSTMENT", "New total is below the number of issued copies", nil)
	case errors.Is(err, catalog.ErrReferentialConflict), errors.Is(err, member.ErrReferentialConflict):
		httpx.JSONError(w, r, http.StatusConflict, "REFERENTIAL_CONFLICT", "Record has outstanding loans or penalties", nil)
	case errors.Is(err, catalog.ErrDuplicateISBN),
		errors.Is(err, member.ErrDuplicateEmail),
		errors.Is(err, auth.ErrDuplicateUser):
		httpx.JSONError(w, r, http.StatusConflict, "DUPLICATE", err.Error(), nil)
	case errors.Is(err, catalog.ErrInvalidStock),
		errors.Is(err, settings.ErrInvalidPolicy),
		errors.Is(err, penalty.ErrInvalidAmount):
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, auth.ErrInvalidCredentials):
		httpx.JSONError(w, r, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", nil)
	case errors.Is(err, loan.ErrLoanNotFound),
		errors.Is(err, member.ErrNotFound),
		errors.Is(err, catalog.ErrBookNotFound),
		errors.Is(err, catalog.ErrAuthorNotFound),
		errors.Is(err, catalog.ErrPublisherNotFound),
		errors.Is(err, inventory.ErrBookNotFound),
		errors.Is(err, penalty.ErrNotFound),
		errors.Is(err, auth.ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	default:
		log.Printf("internal error: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

// decodeAndValidate parses the JSON body into dst and runs struct validation.
// Writes the error response itself; callers bail out on false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", validationDetails(err))
		return false
	}
	return true
}
