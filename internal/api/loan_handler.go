package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"libraryapi/internal/httpx"
	"libraryapi/internal/loan"
)

type LoanHandler struct {
	loans *loan.Service
}

func NewLoanHandler(loans *loan.Service) *LoanHandler {
	return &LoanHandler{loans: loans}
}

type issueRequest struct {
	BookID         string `json:"book_id" validate:"required,uuid"`
	MemberID       string `json:"member_id" validate:"required,uuid"`
	LoanPeriodDays int    `json:"loan_period_days" validate:"omitempty,min=1,max=365"`
}

type returnRequest struct {
	ReturnDate string `json:"return_date" validate:"omitempty,datetime=2006-01-02"`
}

// Issue handles POST /loans
// @Summary Issue a book copy to a member
// @Tags loans
// @Accept json
// @Produce json
// @Security Bearer
// @Success 201 {object} httpx.SuccessResponse
// @Failure 409 {object} httpx.ErrorResponse "OUT_OF_STOCK"
// @Failure 422 {object} httpx.ErrorResponse "MEMBER_SUSPENDED, PENALTY_HOLD, LOAN_LIMIT"
// @Router /loans [post]
func (h *LoanHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	l, err := h.loans.Issue(r.Context(), req.BookID, req.MemberID, req.LoanPeriodDays)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, l)
}

// Return handles POST /loans/{id}/return
// @Summary Return a loaned copy
// @Tags loans
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse "LOAN_NOT_FOUND"
// @Failure 409 {object} httpx.ErrorResponse "ALREADY_RETURNED"
// @Router /loans/{id}/return [post]
func (h *LoanHandler) Return(w http.ResponseWriter, r *http.Request) {
	// The body is optional; an empty body means "returned now".
	var req returnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}
	if err := validate.Struct(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", validationDetails(err))
		return
	}

	var returnDate time.Time
	if req.ReturnDate != "" {
		returnDate, _ = time.Parse("2006-01-02", req.ReturnDate)
	}

	l, err := h.loans.Return(r.Context(), r.PathValue("id"), returnDate)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, l, nil)
}

func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, err := h.loans.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, l, nil)
}

// ListOverdue handles GET /loans/overdue: active loans past their due date.
func (h *LoanHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	var asOf time.Time
	if v := r.URL.Query().Get("as_of"); v != "" {
		asOf, _ = time.Parse("2006-01-02", v)
	}
	loans, err := h.loans.ListOverdue(r.Context(), asOf)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, loans, nil)
}
