package catalog

import (
	"context"
)

// Repository defines the contract for catalog storage.
type Repository interface {
	CreateBook(ctx context.Context, b *Book) error
	GetBookByID(ctx context.Context, id string) (Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (Book, error)
	ListBooks(ctx context.Context, q Query) ([]Book, int, error)
	UpdateBook(ctx context.Context, b *Book) error
	DeleteBook(ctx context.Context, id string) error
	CountBooks(ctx context.Context) (int, error)

	CreateAuthor(ctx context.Context, a *Author) error
	GetAuthorByID(ctx context.Context, id string) (Author, error)
	ListAuthors(ctx context.Context) ([]Author, error)
	UpdateAuthor(ctx context.Context, a *Author) error
	DeleteAuthor(ctx context.Context, id string) error

	CreatePublisher(ctx context.Context, p *Publisher) error
	GetPublisherByID(ctx context.Context, id string) (Publisher, error)
	ListPublishers(ctx context.Context) ([]Publisher, error)
	UpdatePublisher(ctx context.Context, p *Publisher) error
	DeletePublisher(ctx context.Context, id string) error
}
