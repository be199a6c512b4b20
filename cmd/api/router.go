package main

import (
	"net/http"

	"libraryapi/internal/api"
	"libraryapi/internal/auth"
	"libraryapi/internal/httpx"
)

type handlers struct {
	auth          *api.AuthHandler
	books         *api.BookHandler
	catalog       *api.CatalogHandler
	members       *api.MemberHandler
	loans         *api.LoanHandler
	penalties     *api.PenaltyHandler
	settings      *api.SettingsHandler
	notifications *api.NotificationHandler
	stats         *api.StatsHandler
}

// newRouter registers every route on a ServeMux. Auth-protected routes are
// wrapped individually so the public catalog read endpoints stay open.
func newRouter(h handlers, jwtSecret string, ready http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	protect := httpx.AuthMiddleware(jwtSecret)
	adminOnly := httpx.RequireRole(auth.RoleAdmin)

	protected := func(fn http.HandlerFunc) http.Handler {
		return protect(fn)
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /readyz", ready)

	mux.HandleFunc("POST /auth/register", h.auth.Register)
	mux.HandleFunc("POST /auth/login", h.auth.Login)
	mux.Handle("GET /me", protected(h.auth.Me))

	mux.HandleFunc("GET /books", h.books.List)
	mux.HandleFunc("GET /books/{isbn}", h.books.GetByISBN)
	mux.Handle("POST /books", protected(h.books.Create))
	mux.Handle("PATCH /books/{id}", protected(h.books.Update))
	mux.Handle("PATCH /books/{id}/stock", protected(h.books.AdjustStock))
	mux.Handle("DELETE /books/{id}", protected(h.books.Delete))
	mux.Handle("GET /books/{id}/audit", protected(h.books.Audit))

	mux.Handle("GET /authors", protected(h.catalog.ListAuthors))
	mux.Handle("POST /authors", protected(h.catalog.CreateAuthor))
	mux.Handle("PUT /authors/{id}", protected(h.catalog.UpdateAuthor))
	mux.Handle("DELETE /authors/{id}", protected(h.catalog.DeleteAuthor))
	mux.Handle("GET /publishers", protected(h.catalog.ListPublishers))
	mux.Handle("POST /publishers", protected(h.catalog.CreatePublisher))
	mux.Handle("PUT /publishers/{id}", protected(h.catalog.UpdatePublisher))
	mux.Handle("DELETE /publishers/{id}", protected(h.catalog.DeletePublisher))

	mux.Handle("GET /members", protected(h.members.List))
	mux.Handle("POST /members", protected(h.members.Create))
	mux.Handle("GET /members/{id}", protected(h.members.Get))
	mux.Handle("PUT /members/{id}", protected(h.members.Update))
	mux.Handle("DELETE /members/{id}", protected(h.members.Delete))
	mux.Handle("POST /members/{id}/suspend", protected(h.members.Suspend))
	mux.Handle("POST /members/{id}/reinstate", protected(h.members.Reinstate))
	mux.Handle("GET /members/{id}/loans", protected(h.members.Loans))
	mux.Handle("GET /members/{id}/balance", protected(h.members.Balance))
	mux.Handle("GET /members/{id}/penalties", protected(h.members.Penalties))

	mux.Handle("POST /loans", protected(h.loans.Issue))
	mux.Handle("GET /loans/overdue", protected(h.loans.ListOverdue))
	mux.Handle("GET /loans/{id}", protected(h.loans.Get))
	mux.Handle("POST /loans/{id}/return", protected(h.loans.Return))

	mux.Handle("POST /penalties", protected(h.penalties.Create))
	mux.Handle("GET /penalties/{id}", protected(h.penalties.Get))
	mux.Handle("POST /penalties/{id}/pay", protected(h.penalties.Pay))

	mux.Handle("GET /settings", protected(h.settings.Get))
	mux.Handle("PUT /settings", protect(adminOnly(http.HandlerFunc(h.settings.Update))))

	mux.Handle("GET /notifications", protected(h.notifications.List))
	mux.Handle("POST /notifications/actions", protected(h.notifications.Actions))

	mux.Handle("GET /stats", protected(h.stats.Get))

	return mux
}
