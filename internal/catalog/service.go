package catalog

import (
	"context"
	"errors"
)

var ErrInvalidStock = errors.New("available copies cannot exceed total copies")

// Service provides catalog business logic.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateBook(ctx context.Context, b *Book) error {
	if b.AvailableCopies > b.TotalCopies || b.TotalCopies < 0 || b.AvailableCopies < 0 {
		return ErrInvalidStock
	}
	if _, err := s.repo.GetAuthorByID(ctx, b.AuthorID); err != nil {
		return err
	}
	if _, err := s.repo.GetPublisherByID(ctx, b.PublisherID); err != nil {
		return err
	}
	return s.repo.CreateBook(ctx, b)
}

func (s *Service) GetBookByID(ctx context.Context, id string) (Book, error) {
	return s.repo.GetBookByID(ctx, id)
}

func (s *Service) GetBookByISBN(ctx context.Context, isbn string) (Book, error) {
	return s.repo.GetBookByISBN(ctx, isbn)
}

func (s *Service) ListBooks(ctx context.Context, q Query) ([]Book, int, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return s.repo.ListBooks(ctx, q)
}

// UpdateBook edits bibliographic fields only; stock goes through the ledger.
func (s *Service) UpdateBook(ctx context.Context, b *Book) error {
	return s.repo.UpdateBook(ctx, b)
}

func (s *Service) DeleteBook(ctx context.Context, id string) error {
	return s.repo.DeleteBook(ctx, id)
}

func (s *Service) CountBooks(ctx context.Context) (int, error) {
	return s.repo.CountBooks(ctx)
}

func (s *Service) CreateAuthor(ctx context.Context, a *Author) error {
	return s.repo.CreateAuthor(ctx, a)
}

func (s *Service) ListAuthors(ctx context.Context) ([]Author, error) {
	return s.repo.ListAuthors(ctx)
}

func (s *Service) UpdateAuthor(ctx context.Context, a *Author) error {
	return s.repo.UpdateAuthor(ctx, a)
}

func (s *Service) DeleteAuthor(ctx context.Context, id string) error {
	return s.repo.DeleteAuthor(ctx, id)
}

func (s *Service) CreatePublisher(ctx context.Context, p *Publisher) error {
	return s.repo.CreatePublisher(ctx, p)
}

func (s *Service) ListPublishers(ctx context.Context) ([]Publisher, error) {
	return s.repo.ListPublishers(ctx)
}

func (s *Service) UpdatePublisher(ctx context.Context, p *Publisher) error {
	return s.repo.UpdatePublisher(ctx, p)
}

func (s *Service) DeletePublisher(ctx context.Context, id string) error {
	return s.repo.DeletePublisher(ctx, id)
}
