package penalty

import (
	"context"

	"libraryapi/internal/inventory"
)

// Repository defines the contract for penalty storage. Create accepts a
// Querier so the loan manager can persist an assessment inside its own
// return transaction.
type Repository interface {
	Create(ctx context.Context, q inventory.Querier, p *Penalty) error
	GetByID(ctx context.Context, id string) (Penalty, error)
	MarkPaid(ctx context.Context, id string) (bool, error)
	ListByMember(ctx context.Context, memberID string) ([]Penalty, error)
	SumUnpaidByMember(ctx context.Context, memberID string) (int64, error)
	SumUnpaidTotal(ctx context.Context) (int64, error)
}
