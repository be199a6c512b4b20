package penalty

import (
	"context"
	"testing"

	"libraryapi/internal/inventory"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssess(t *testing.T) {
	tests := []struct {
		name        string
		overdueDays int
		dailyRate   int64
		maxPenalty  int64
		wantAmount  int64
	}{
		{"three days at 500", 3, 500, 50000, 1500},
		{"zero days", 0, 500, 50000, 0},
		{"negative days clamped", -2, 500, 50000, 0},
		{"cap applies", 200, 500, 50000, 50000},
		{"no cap when zero", 200, 500, 0, 100000},
		{"exactly at cap", 100, 500, 50000, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Assess("loan-1", "member-1", "Dune", tt.overdueDays, tt.dailyRate, tt.maxPenalty)
			assert.Equal(t, tt.wantAmount, p.AmountCents)
			assert.Equal(t, StatusUnpaid, p.Status)
			assert.Equal(t, "loan-1", p.LoanID)
			assert.Equal(t, "member-1", p.MemberID)
		})
	}
}

func TestAssess_Reason(t *testing.T) {
	p := Assess("loan-1", "member-1", "Dune", 3, 500, 0)
	assert.Equal(t, "Overdue: Dune (3 days)", p.Reason)
}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, q inventory.Querier, p *Penalty) error {
	args := m.Called(ctx, q, p)
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (Penalty, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Penalty), args.Error(1)
}

func (m *mockRepo) MarkPaid(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) ListByMember(ctx context.Context, memberID string) ([]Penalty, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Penalty), args.Error(1)
}

func (m *mockRepo) SumUnpaidByMember(ctx context.Context, memberID string) (int64, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) SumUnpaidTotal(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestService_Pay(t *testing.T) {
	ctx := context.Background()

	t.Run("settles unpaid penalty with exact amount", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, nil)
		repo.On("GetByID", ctx, "p1").Return(Penalty{ID: "p1", AmountCents: 1500, Status: StatusUnpaid}, nil)
		repo.On("MarkPaid", ctx, "p1").Return(true, nil)

		require.NoError(t, svc.Pay(ctx, "p1", 1500))
		repo.AssertExpectations(t)
	})

	t.Run("rejects paid penalty", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, nil)
		repo.On("GetByID", ctx, "p1").Return(Penalty{ID: "p1", AmountCents: 1500, Status: StatusPaid}, nil)

		assert.ErrorIs(t, svc.Pay(ctx, "p1", 1500), ErrAlreadyPaid)
		repo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
	})

	t.Run("rejects partial payment", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, nil)
		repo.On("GetByID", ctx, "p1").Return(Penalty{ID: "p1", AmountCents: 1500, Status: StatusUnpaid}, nil)

		assert.ErrorIs(t, svc.Pay(ctx, "p1", 1000), ErrAmountMismatch)
		repo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
	})

	t.Run("rejects overpayment", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, nil)
		repo.On("GetByID", ctx, "p1").Return(Penalty{ID: "p1", AmountCents: 1500, Status: StatusUnpaid}, nil)

		assert.ErrorIs(t, svc.Pay(ctx, "p1", 2000), ErrAmountMismatch)
	})

	t.Run("lost race surfaces as already paid", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, nil)
		repo.On("GetByID", ctx, "p1").Return(Penalty{ID: "p1", AmountCents: 1500, Status: StatusUnpaid}, nil)
		repo.On("MarkPaid", ctx, "p1").Return(false, nil)

		assert.ErrorIs(t, svc.Pay(ctx, "p1", 1500), ErrAlreadyPaid)
	})

	t.Run("unknown penalty", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, nil)
		repo.On("GetByID", ctx, "missing").Return(Penalty{}, ErrNotFound)

		assert.ErrorIs(t, svc.Pay(ctx, "missing", 100), ErrNotFound)
	})
}

func TestService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects negative amounts", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, nil)

		err := svc.Record(ctx, nil, &Penalty{MemberID: "member-1", AmountCents: -100})
		assert.ErrorIs(t, err, ErrInvalidAmount)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("defaults status and falls back to the configured querier", func(t *testing.T) {
		repo := new(mockRepo)
		pool := (*pgxpool.Pool)(nil)
		svc := NewService(repo, pool)
		repo.On("Create", ctx, inventory.Querier(pool), mock.AnythingOfType("*penalty.Penalty")).Return(nil)

		p := Penalty{MemberID: "member-1", AmountCents: 300, Reason: "torn pages"}
		require.NoError(t, svc.Record(ctx, nil, &p))
		assert.Equal(t, StatusUnpaid, p.Status)
		repo.AssertExpectations(t)
	})
}

func TestService_CreateManual(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, nil)

		_, err := svc.CreateManual(ctx, "member-1", 0, "damaged cover")
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, err = svc.CreateManual(ctx, "member-1", -500, "damaged cover")
		assert.ErrorIs(t, err, ErrInvalidAmount)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("defaults the reason", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, nil)
		repo.On("Create", ctx, nil, mock.AnythingOfType("*penalty.Penalty")).Return(nil)

		p, err := svc.CreateManual(ctx, "member-1", 750, "")
		require.NoError(t, err)
		assert.Equal(t, "Penalty", p.Reason)
		assert.Equal(t, int64(750), p.AmountCents)
		assert.Equal(t, StatusUnpaid, p.Status)
	})
}

func TestService_OutstandingBalance(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	svc := NewService(repo, nil)
	repo.On("SumUnpaidByMember", ctx, "member-1").Return(int64(2250), nil)

	got, err := svc.OutstandingBalance(ctx, "member-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2250), got)
}
