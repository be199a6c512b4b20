package api

import (
	"net/http"

	"libraryapi/internal/auth"
	"libraryapi/internal/httpx"
)

type AuthHandler struct {
	service *auth.Service
}

func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=LIBRARIAN ADMIN"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  auth.User `json:"user"`
}

// Register handles POST /auth/register
// @Summary Register a staff account
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		switch err {
		case auth.ErrPasswordTooShort, auth.ErrPasswordNoUpper, auth.ErrPasswordNoLower,
			auth.ErrPasswordNoNumber, auth.ErrPasswordNoSpecialChar:
			httpx.JSONError(w, r, http.StatusBadRequest, "WEAK_PASSWORD", err.Error(), nil)
		default:
			writeDomainError(w, r, err)
		}
		return
	}
	httpx.JSONSuccessCreated(w, r, u)
}

// Login handles POST /auth/login
// @Summary Log in a staff account
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, u, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, loginResponse{Token: token, User: u}, nil)
}

// Me handles GET /me
// @Summary Current staff account
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}
	u, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, u, nil)
}
