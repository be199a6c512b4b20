package notification

import (
	"context"
	"log"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add records a feed entry. Failures are logged, not surfaced: the feed is
// informational and must never fail a lending operation.
func (s *Service) Add(ctx context.Context, message string) {
	if err := s.repo.Add(ctx, message); err != nil {
		log.Printf("notification add failed: message=%q error=%v", message, err)
	}
}

func (s *Service) List(ctx context.Context) ([]Notification, error) {
	return s.repo.List(ctx)
}

func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	return s.repo.UnreadCount(ctx)
}

func (s *Service) MarkAllRead(ctx context.Context) error {
	return s.repo.MarkAllRead(ctx)
}

func (s *Service) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
