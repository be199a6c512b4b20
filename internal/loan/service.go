package loan

import (
	"context"
	"fmt"
	"time"

	"libraryapi/internal/penalty"
)

// Service is the lending state machine. A loan moves ACTIVE → RETURNED or
// ACTIVE → OVERDUE_RETURNED and nothing else.
type Service struct {
	repo     Repository
	members  MemberDirectory
	books    BookDirectory
	policy   PolicyReader
	balances BalanceReader
	notify   Notifier
	now      func() time.Time
}

func NewService(repo Repository, members MemberDirectory, books BookDirectory, policy PolicyReader, balances BalanceReader, notify Notifier) *Service {
	return &Service{
		repo:     repo,
		members:  members,
		books:    books,
		policy:   policy,
		balances: balances,
		notify:   notify,
		now:      time.Now,
	}
}

// WithClock overrides the clock source. For tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Issue lends one copy of a book to a member. Preconditions run in a fixed
// order: member active, no penalty hold, under the loan limit, then a copy
// must be reservable. The reservation and the loan row commit atomically.
func (s *Service) Issue(ctx context.Context, bookID, memberID string, loanPeriodDays int) (Loan, error) {
	pol, err := s.policy.Get(ctx)
	if err != nil {
		return Loan{}, err
	}

	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return Loan{}, err
	}
	if !m.Active() {
		return Loan{}, ErrMemberSuspended
	}

	balance, err := s.balances.OutstandingBalance(ctx, memberID)
	if err != nil {
		return Loan{}, err
	}
	if balance > pol.HoldThresholdCents {
		return Loan{}, ErrPenaltyHold
	}

	held, err := s.repo.CountActiveForMember(ctx, memberID)
	if err != nil {
		return Loan{}, err
	}
	if pol.MaxBooks > 0 && held >= pol.MaxBooks {
		return Loan{}, ErrLoanLimit
	}

	b, err := s.books.GetBookByID(ctx, bookID)
	if err != nil {
		return Loan{}, err
	}

	if loanPeriodDays <= 0 {
		loanPeriodDays = pol.LoanDays
	}
	issueDate := s.now()
	l := Loan{
		BookID:    bookID,
		MemberID:  memberID,
		IssueDate: issueDate,
		DueDate:   issueDate.AddDate(0, 0, loanPeriodDays),
		Status:    StatusActive,
	}
	if err := s.repo.Issue(ctx, &l); err != nil {
		return Loan{}, err
	}

	if s.notify != nil {
		s.notify.Add(ctx, fmt.Sprintf("Book '%s' issued to %s", b.Title, m.Name))
	}
	return l, nil
}

// Return closes an active loan, releasing its copy. Returning on the due
// date is on time; any later day assesses a penalty in the same transaction.
// A second return of the same loan fails rather than double-releasing.
func (s *Service) Return(ctx context.Context, loanID string, returnDate time.Time) (Loan, error) {
	l, err := s.repo.GetByID(ctx, loanID)
	if err != nil {
		return Loan{}, err
	}
	if l.Status != StatusActive {
		return Loan{}, ErrAlreadyReturned
	}

	if returnDate.IsZero() {
		returnDate = s.now()
	}

	status := StatusReturned
	var pen *penalty.Penalty
	var bookTitle string
	if b, err := s.books.GetBookByID(ctx, l.BookID); err == nil {
		bookTitle = b.Title
	}

	if l.Overdue(returnDate) {
		status = StatusOverdueReturned
		pol, err := s.policy.Get(ctx)
		if err != nil {
			return Loan{}, err
		}
		days := OverdueDays(l.DueDate, returnDate)
		p := penalty.Assess(l.ID, l.MemberID, bookTitle, days, pol.DailyRateCents, pol.MaxPenaltyCents)
		pen = &p
	}

	updated, err := s.repo.Return(ctx, loanID, returnDate, status, pen)
	if err != nil {
		return Loan{}, err
	}

	if s.notify != nil {
		if pen != nil {
			s.notify.Add(ctx, fmt.Sprintf("Book '%s' returned overdue; penalty %d cents assessed", bookTitle, pen.AmountCents))
		} else {
			s.notify.Add(ctx, fmt.Sprintf("Book '%s' returned", bookTitle))
		}
	}
	return updated, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Loan, error) {
	return s.repo.GetByID(ctx, id)
}

// ListActiveForMember returns a member's outstanding loans ordered by issue
// date.
func (s *Service) ListActiveForMember(ctx context.Context, memberID string) ([]Loan, error) {
	return s.repo.ListActiveForMember(ctx, memberID)
}

// ListOverdue returns active loans whose due date has passed as of the given
// time (now when zero).
func (s *Service) ListOverdue(ctx context.Context, asOf time.Time) ([]Loan, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}
	return s.repo.ListOverdue(ctx, asOf)
}

func (s *Service) CountActive(ctx context.Context) (int, error) {
	return s.repo.CountActive(ctx)
}

func (s *Service) CountOverdue(ctx context.Context) (int, error) {
	return s.repo.CountOverdue(ctx, s.now())
}
