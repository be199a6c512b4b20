package catalog

import (
	"errors"
	"time"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrAuthorNotFound    = errors.New("author not found")
	ErrPublisherNotFound = errors.New("publisher not found")
	ErrDuplicateISBN     = errors.New("a book with this ISBN already exists")

	// ErrReferentialConflict blocks deleting a record that loans or
	// penalties still reference.
	ErrReferentialConflict = errors.New("record has outstanding references")
)

// Book carries the stock counters alongside the bibliographic fields. The
// counters are mutated only by the inventory ledger and by AdjustStock.
type Book struct {
	ID              string    `json:"id"`
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	AuthorID        string    `json:"author_id"`
	PublisherID     string    `json:"publisher_id"`
	CoverURL        string    `json:"cover_url,omitempty"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio,omitempty"`
}

type Publisher struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// Query defines filters and pagination for listing books.
type Query struct {
	Q           string
	AuthorID    string
	PublisherID string
	Limit       int
	Offset      int
}
