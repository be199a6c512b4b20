package api

import (
	"net/http"

	"libraryapi/internal/catalog"
	"libraryapi/internal/httpx"
	"libraryapi/internal/loan"
	"libraryapi/internal/member"
	"libraryapi/internal/penalty"
)

// StatsHandler serves the dashboard counters.
type StatsHandler struct {
	catalog   *catalog.Service
	members   *member.Service
	loans     *loan.Service
	penalties *penalty.Service
}

func NewStatsHandler(catalogSvc *catalog.Service, members *member.Service, loans *loan.Service, penalties *penalty.Service) *StatsHandler {
	return &StatsHandler{catalog: catalogSvc, members: members, loans: loans, penalties: penalties}
}

type statsResponse struct {
	TotalBooks        int   `json:"total_books"`
	TotalMembers      int   `json:"total_members"`
	ActiveLoans       int   `json:"active_loans"`
	OverdueLoans      int   `json:"overdue_loans"`
	UnpaidPenaltyCents int64 `json:"unpaid_penalty_cents"`
}

func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		out statsResponse
		err error
	)
	if out.TotalBooks, err = h.catalog.CountBooks(ctx); err != nil {
		writeDomainError(w, r, err)
		return
	}
	if out.TotalMembers, err = h.members.Count(ctx); err != nil {
		writeDomainError(w, r, err)
		return
	}
	if out.ActiveLoans, err = h.loans.CountActive(ctx); err != nil {
		writeDomainError(w, r, err)
		return
	}
	if out.OverdueLoans, err = h.loans.CountOverdue(ctx); err != nil {
		writeDomainError(w, r, err)
		return
	}
	if out.UnpaidPenaltyCents, err = h.penalties.UnpaidTotal(ctx); err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, out, nil)
}
