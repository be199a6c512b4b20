package api

import (
	"net/http"

	"libraryapi/internal/httpx"
	"libraryapi/internal/notification"
	"libraryapi/internal/settings"
)

type SettingsHandler struct {
	settings *settings.Service
	notify   *notification.Service
}

func NewSettingsHandler(settingsSvc *settings.Service, notify *notification.Service) *SettingsHandler {
	return &SettingsHandler{settings: settingsSvc, notify: notify}
}

type settingsRequest struct {
	LibraryName        string `json:"library_name" validate:"required,max=200"`
	Address            string `json:"address" validate:"omitempty,max=500"`
	Contact            string `json:"contact" validate:"omitempty,max=50"`
	DailyRateCents     int64  `json:"daily_rate_cents" validate:"min=0"`
	MaxPenaltyCents    int64  `json:"max_penalty_cents" validate:"min=0"`
	LoanDays           int    `json:"loan_days" validate:"required,min=1,max=365"`
	MaxBooks           int    `json:"max_books" validate:"required,min=1,max=100"`
	HoldThresholdCents int64  `json:"hold_threshold_cents" validate:"min=0"`
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Get(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, s, nil)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	s := settings.Settings{
		LibraryName:        req.LibraryName,
		Address:            req.Address,
		Contact:            req.Contact,
		DailyRateCents:     req.DailyRateCents,
		MaxPenaltyCents:    req.MaxPenaltyCents,
		LoanDays:           req.LoanDays,
		MaxBooks:           req.MaxBooks,
		HoldThresholdCents: req.HoldThresholdCents,
	}
	if err := h.settings.Update(r.Context(), s); err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.notify.Add(r.Context(), "Settings updated")
	httpx.JSONSuccess(w, r, s, nil)
}
