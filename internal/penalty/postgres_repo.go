package penalty

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"libraryapi/internal/inventory"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, q inventory.Querier, p *Penalty) error {
	const query = `
	INSERT INTO penalties (id, loan_id, member_id, amount_cents, reason, status)
	VALUES (gen_random_uuid(), NULLIF($1, ''), $2, $3, $4, $5)
	RETURNING id, created_at
	`
	return q.QueryRow(ctx, query, p.LoanID, p.MemberID, p.AmountCents, p.Reason, p.Status).
		Scan(&p.ID, &p.CreatedAt)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Penalty, error) {
	const query = `
	SELECT id, COALESCE(loan_id::text, ''), member_id, amount_cents, reason, status, created_at, paid_at
	FROM penalties WHERE id = $1 LIMIT 1
	`
	var p Penalty
	var paidAt sql.NullTime
	err := r.db.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.LoanID, &p.MemberID, &p.AmountCents, &p.Reason, &p.Status, &p.CreatedAt, &paidAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Penalty{}, ErrNotFound
		}
		return Penalty{}, err
	}
	if paidAt.Valid {
		p.PaidAt = &paidAt.Time
	}
	return p, nil
}

// MarkPaid flips an unpaid penalty to paid. Returns false when the row was
// already paid (or the id is gone), so callers can report the race.
func (r *PostgresRepo) MarkPaid(ctx context.Context, id string) (bool, error) {
	const query = `
	UPDATE penalties SET status = 'PAID', paid_at = NOW()
	WHERE id = $1 AND status = 'UNPAID'
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostgresRepo) ListByMember(ctx context.Context, memberID string) ([]Penalty, error) {
	const query = `
	SELECT id, COALESCE(loan_id::text, ''), member_id, amount_cents, reason, status, created_at, paid_at
	FROM penalties
	WHERE member_id = $1
	ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Penalty
	for rows.Next() {
		var p Penalty
		var paidAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.LoanID, &p.MemberID, &p.AmountCents, &p.Reason, &p.Status, &p.CreatedAt, &paidAt); err != nil {
			return nil, err
		}
		if paidAt.Valid {
			p.PaidAt = &paidAt.Time
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) SumUnpaidByMember(ctx context.Context, memberID string) (int64, error) {
	const query = `
	SELECT COALESCE(SUM(amount_cents), 0) FROM penalties
	WHERE member_id = $1 AND status = 'UNPAID'
	`
	var sum int64
	err := r.db.QueryRow(ctx, query, memberID).Scan(&sum)
	return sum, err
}

func (r *PostgresRepo) SumUnpaidTotal(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount_cents), 0) FROM penalties WHERE status = 'UNPAID'`).Scan(&sum)
	return sum, err
}
