package penalty

import (
	"context"

	"libraryapi/internal/inventory"
)

type Service struct {
	repo Repository
	db   inventory.Querier
}

func NewService(repo Repository, db inventory.Querier) *Service {
	return &Service{repo: repo, db: db}
}

// Record persists an assessed or manual penalty on the given querier (pool
// or an enclosing transaction).
func (s *Service) Record(ctx context.Context, q inventory.Querier, p *Penalty) error {
	if q == nil {
		q = s.db
	}
	if p.AmountCents < 0 {
		return ErrInvalidAmount
	}
	if p.Status == "" {
		p.Status = StatusUnpaid
	}
	return s.repo.Create(ctx, q, p)
}

// CreateManual records an ad-hoc penalty entered by staff.
func (s *Service) CreateManual(ctx context.Context, memberID string, amountCents int64, reason string) (Penalty, error) {
	if amountCents <= 0 {
		return Penalty{}, ErrInvalidAmount
	}
	if reason == "" {
		reason = "Penalty"
	}
	p := Penalty{
		MemberID:    memberID,
		AmountCents: amountCents,
		Reason:      reason,
	}
	if err := s.Record(ctx, nil, &p); err != nil {
		return Penalty{}, err
	}
	return p, nil
}

// Pay settles a penalty in full. Partial payments are rejected; paying twice
// fails rather than silently succeeding.
func (s *Service) Pay(ctx context.Context, penaltyID string, amountPaidCents int64) error {
	p, err := s.repo.GetByID(ctx, penaltyID)
	if err != nil {
		return err
	}
	if p.Status == StatusPaid {
		return ErrAlreadyPaid
	}
	if amountPaidCents != p.AmountCents {
		return ErrAmountMismatch
	}
	paid, err := s.repo.MarkPaid(ctx, penaltyID)
	if err != nil {
		return err
	}
	if !paid {
		// Lost the race with another payment.
		return ErrAlreadyPaid
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Penalty, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByMember(ctx context.Context, memberID string) ([]Penalty, error) {
	return s.repo.ListByMember(ctx, memberID)
}

// OutstandingBalance sums a member's unpaid penalties in cents.
func (s *Service) OutstandingBalance(ctx context.Context, memberID string) (int64, error) {
	return s.repo.SumUnpaidByMember(ctx, memberID)
}

func (s *Service) UnpaidTotal(ctx context.Context) (int64, error) {
	return s.repo.SumUnpaidTotal(ctx)
}
