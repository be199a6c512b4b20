package settings

import (
	"context"
	"errors"
)

var ErrInvalidPolicy = errors.New("policy values must be non-negative")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (Settings, error) {
	return s.repo.Get(ctx)
}

func (s *Service) Update(ctx context.Context, in Settings) error {
	if in.DailyRateCents < 0 || in.MaxPenaltyCents < 0 || in.HoldThresholdCents < 0 ||
		in.LoanDays <= 0 || in.MaxBooks <= 0 {
		return ErrInvalidPolicy
	}
	return s.repo.Update(ctx, in)
}
