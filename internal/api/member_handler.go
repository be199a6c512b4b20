package api

import (
	"net/http"
	"strconv"

	"libraryapi/internal/httpx"
	"libraryapi/internal/loan"
	"libraryapi/internal/member"
	"libraryapi/internal/penalty"
)

type MemberHandler struct {
	members   *member.Service
	loans     *loan.Service
	penalties *penalty.Service
}

func NewMemberHandler(members *member.Service, loans *loan.Service, penalties *penalty.Service) *MemberHandler {
	return &MemberHandler{members: members, loans: loans, penalties: penalties}
}

type memberRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=15"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	members, total, err := h.members.List(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, members, map[string]interface{}{"total": total})
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.members.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, m, nil)
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	m := member.Member{Name: req.Name, Email: req.Email, Phone: req.Phone, Address: req.Address}
	if err := h.members.Create(r.Context(), &m); err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, m)
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	m := member.Member{ID: r.PathValue("id"), Name: req.Name, Email: req.Email, Phone: req.Phone, Address: req.Address}
	if err := h.members.Update(r.Context(), &m); err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, m, nil)
}

// Suspend handles POST /members/{id}/suspend. Suspended members keep and may
// return their loans; they just cannot receive new ones.
func (h *MemberHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	if err := h.members.Suspend(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *MemberHandler) Reinstate(w http.ResponseWriter, r *http.Request) {
	if err := h.members.Reinstate(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.members.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// Loans handles GET /members/{id}/loans: the member's active loans ordered
// by issue date.
func (h *MemberHandler) Loans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loans.ListActiveForMember(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, loans, nil)
}

// Balance handles GET /members/{id}/balance, the unpaid penalty total in cents.
func (h *MemberHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.penalties.OutstandingBalance(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, map[string]int64{"balance_cents": balance}, nil)
}

func (h *MemberHandler) Penalties(w http.ResponseWriter, r *http.Request) {
	list, err := h.penalties.ListByMember(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, list, nil)
}
