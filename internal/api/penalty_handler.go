package api

import (
	"fmt"
	"net/http"

	"libraryapi/internal/httpx"
	"libraryapi/internal/notification"
	"libraryapi/internal/penalty"
)

type PenaltyHandler struct {
	penalties *penalty.Service
	notify    *notification.Service
}

func NewPenaltyHandler(penalties *penalty.Service, notify *notification.Service) *PenaltyHandler {
	return &PenaltyHandler{penalties: penalties, notify: notify}
}

type createPenaltyRequest struct {
	MemberID    string `json:"member_id" validate:"required,uuid"`
	AmountCents int64  `json:"amount_cents" validate:"required,min=1"`
	Reason      string `json:"reason" validate:"omitempty,max=200"`
}

type payPenaltyRequest struct {
	AmountCents int64 `json:"amount_cents" validate:"required,min=1"`
}

// Create handles POST /penalties, an ad-hoc penalty entered by staff.
func (h *PenaltyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPenaltyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p, err := h.penalties.CreateManual(r.Context(), req.MemberID, req.AmountCents, req.Reason)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, p)
}

// Pay handles POST /penalties/{id}/pay
// @Summary Settle a penalty in full
// @Tags penalties
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 409 {object} httpx.ErrorResponse "AMOUNT_MISMATCH, ALREADY_PAID"
// @Router /penalties/{id}/pay [post]
func (h *PenaltyHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req payPenaltyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id := r.PathValue("id")
	if err := h.penalties.Pay(r.Context(), id, req.AmountCents); err != nil {
		writeDomainError(w, r, err)
		return
	}

	p, err := h.penalties.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.notify.Add(r.Context(), fmt.Sprintf("Penalty %s paid (%d cents)", p.ID, p.AmountCents))
	httpx.JSONSuccess(w, r, p, nil)
}

func (h *PenaltyHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.penalties.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, p, nil)
}
