package loan

import (
	"context"
	"time"

	"libraryapi/internal/catalog"
	"libraryapi/internal/member"
	"libraryapi/internal/penalty"
	"libraryapi/internal/settings"
)

// Repository defines the contract for loan storage. Issue and Return are
// compound: they mutate the inventory ledger and the loan row (and persist a
// penalty, if any) in one transaction.
type Repository interface {
	Issue(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id string) (Loan, error)
	Return(ctx context.Context, loanID string, returnDate time.Time, status Status, pen *penalty.Penalty) (Loan, error)
	ListActiveForMember(ctx context.Context, memberID string) ([]Loan, error)
	CountActiveForMember(ctx context.Context, memberID string) (int, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]Loan, error)
	CountActive(ctx context.Context) (int, error)
	CountOverdue(ctx context.Context, asOf time.Time) (int, error)
}

// MemberDirectory is the slice of the membership store the loan manager
// consults for eligibility.
type MemberDirectory interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
}

// BookDirectory is the slice of the catalog the loan manager reads.
type BookDirectory interface {
	GetBookByID(ctx context.Context, id string) (catalog.Book, error)
}

// PolicyReader supplies the lending policy.
type PolicyReader interface {
	Get(ctx context.Context) (settings.Settings, error)
}

// BalanceReader supplies a member's unpaid penalty total.
type BalanceReader interface {
	OutstandingBalance(ctx context.Context, memberID string) (int64, error)
}

// Notifier receives best-effort feed messages.
type Notifier interface {
	Add(ctx context.Context, message string)
}
