package member

import (
	"context"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, m *Member) error {
	if m.Status == "" {
		m.Status = StatusActive
	}
	return s.repo.Create(ctx, m)
}

func (s *Service) GetByID(ctx context.Context, id string) (Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Member, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Update(ctx context.Context, m *Member) error {
	return s.repo.Update(ctx, m)
}

func (s *Service) Suspend(ctx context.Context, id string) error {
	return s.repo.SetStatus(ctx, id, StatusSuspended)
}

func (s *Service) Reinstate(ctx context.Context, id string) error {
	return s.repo.SetStatus(ctx, id, StatusActive)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
