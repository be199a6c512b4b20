package api

import (
	"fmt"
	"net/http"
	"strconv"

	"libraryapi/internal/catalog"
	"libraryapi/internal/httpx"
	"libraryapi/internal/inventory"
	"libraryapi/internal/notification"
)

type BookHandler struct {
	catalog *catalog.Service
	ledger  *inventory.Ledger
	notify  *notification.Service
}

func NewBookHandler(catalogSvc *catalog.Service, ledger *inventory.Ledger, notify *notification.Service) *BookHandler {
	return &BookHandler{catalog: catalogSvc, ledger: ledger, notify: notify}
}

type createBookRequest struct {
	ISBN        string `json:"isbn" validate:"required,isbn"`
	Title       string `json:"title" validate:"required,max=200"`
	AuthorID    string `json:"author_id" validate:"required,uuid"`
	PublisherID string `json:"publisher_id" validate:"required,uuid"`
	CoverURL    string `json:"cover_url" validate:"omitempty,url"`
	TotalCopies int    `json:"total_copies" validate:"min=0"`
}

type updateBookRequest struct {
	ISBN        string `json:"isbn" validate:"required,isbn"`
	Title       string `json:"title" validate:"required,max=200"`
	AuthorID    string `json:"author_id" validate:"required,uuid"`
	PublisherID string `json:"publisher_id" validate:"required,uuid"`
	CoverURL    string `json:"cover_url" validate:"omitempty,url"`
}

type adjustStockRequest struct {
	NewTotal int `json:"new_total" validate:"min=0"`
}

// List handles GET /books
// @Summary List books
// @Tags books
// @Produce json
// @Param q query string false "Search in ISBN and title"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} httpx.SuccessResponse
// @Router /books [get]
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	q := catalog.Query{
		Q:           r.URL.Query().Get("q"),
		AuthorID:    r.URL.Query().Get("author_id"),
		PublisherID: r.URL.Query().Get("publisher_id"),
	}
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	q.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	books, total, err := h.catalog.ListBooks(r.Context(), q)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, map[string]interface{}{"total": total})
}

// GetByISBN handles GET /books/{isbn}
// @Summary Get a book by ISBN
// @Tags books
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{isbn} [get]
func (h *BookHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")
	b, err := h.catalog.GetBookByISBN(r.Context(), isbn)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Create handles POST /books
// @Summary Add a book
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Success 201 {object} httpx.SuccessResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	b := catalog.Book{
		ISBN:            req.ISBN,
		Title:           req.Title,
		AuthorID:        req.AuthorID,
		PublisherID:     req.PublisherID,
		CoverURL:        req.CoverURL,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.TotalCopies,
	}
	if err := h.catalog.CreateBook(r.Context(), &b); err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.notify.Add(r.Context(), fmt.Sprintf("Book '%s' added", b.Title))
	httpx.JSONSuccessCreated(w, r, b)
}

// Update handles PATCH /books/{id}
// @Summary Edit a book's bibliographic fields
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [patch]
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateBookRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	b := catalog.Book{
		ID:          r.PathValue("id"),
		ISBN:        req.ISBN,
		Title:       req.Title,
		AuthorID:    req.AuthorID,
		PublisherID: req.PublisherID,
		CoverURL:    req.CoverURL,
	}
	if err := h.catalog.UpdateBook(r.Context(), &b); err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// AdjustStock handles PATCH /books/{id}/stock
// @Summary Set a book's total copies
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books/{id}/stock [patch]
func (h *BookHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req adjustStockRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id := r.PathValue("id")
	if err := h.ledger.AdjustStock(r.Context(), id, req.NewTotal); err != nil {
		writeDomainError(w, r, err)
		return
	}
	available, total, err := h.ledger.AvailableCopies(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.notify.Add(r.Context(), fmt.Sprintf("Stock adjusted to %d copies for book %s", total, id))
	httpx.JSONSuccess(w, r, map[string]int{"available_copies": available, "total_copies": total}, nil)
}

// Delete handles DELETE /books/{id}
// @Summary Delete a book
// @Tags books
// @Security Bearer
// @Success 204 "No Content"
// @Failure 409 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteBook(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// Audit handles GET /books/{id}/audit
// @Summary Stock mutation log for a book
// @Tags books
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Router /books/{id}/audit [get]
func (h *BookHandler) Audit(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.ledger.AuditTrail(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, entries, nil)
}
