package api

import (
	"net/http"

	"libraryapi/internal/catalog"
	"libraryapi/internal/httpx"
)

// CatalogHandler serves author and publisher CRUD.
type CatalogHandler struct {
	catalog *catalog.Service
}

func NewCatalogHandler(catalogSvc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: catalogSvc}
}

type authorRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Bio  string `json:"bio" validate:"omitempty,max=2000"`
}

type publisherRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

func (h *CatalogHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.catalog.ListAuthors(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, authors, nil)
}

func (h *CatalogHandler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	a := catalog.Author{Name: req.Name, Bio: req.Bio}
	if err := h.catalog.CreateAuthor(r.Context(), &a); err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, a)
}

func (h *CatalogHandler) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	a := catalog.Author{ID: r.PathValue("id"), Name: req.Name, Bio: req.Bio}
	if err := h.catalog.UpdateAuthor(r.Context(), &a); err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, a, nil)
}

func (h *CatalogHandler) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteAuthor(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *CatalogHandler) ListPublishers(w http.ResponseWriter, r *http.Request) {
	publishers, err := h.catalog.ListPublishers(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, publishers, nil)
}

func (h *CatalogHandler) CreatePublisher(w http.ResponseWriter, r *http.Request) {
	var req publisherRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	p := catalog.Publisher{Name: req.Name, Address: req.Address}
	if err := h.catalog.CreatePublisher(r.Context(), &p); err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, p)
}

func (h *CatalogHandler) UpdatePublisher(w http.ResponseWriter, r *http.Request) {
	var req publisherRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	p := catalog.Publisher{ID: r.PathValue("id"), Name: req.Name, Address: req.Address}
	if err := h.catalog.UpdatePublisher(r.Context(), &p); err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, p, nil)
}

func (h *CatalogHandler) DeletePublisher(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeletePublisher(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
