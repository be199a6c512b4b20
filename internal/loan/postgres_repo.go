package loan

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"libraryapi/internal/inventory"
	"libraryapi/internal/penalty"
)

type PostgresRepo struct {
	db        *pgxpool.Pool
	ledger    *inventory.Ledger
	penalties penalty.Repository
}

func NewPostgresRepo(db *pgxpool.Pool, ledger *inventory.Ledger, penalties penalty.Repository) *PostgresRepo {
	return &PostgresRepo{db: db, ledger: ledger, penalties: penalties}
}

// Issue reserves a copy and inserts the loan row in one transaction. If the
// ledger rejects the reservation nothing is persisted.
func (r *PostgresRepo) Issue(ctx context.Context, l *Loan) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := r.ledger.ReserveCopyIn(ctx, tx, l.BookID); err != nil {
			return err
		}
		const query = `
		INSERT INTO loans (id, book_id, member_id, issue_date, due_date, status)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
		RETURNING id
		`
		return tx.QueryRow(ctx, query, l.BookID, l.MemberID, l.IssueDate, l.DueDate, l.Status).
			Scan(&l.ID)
	})
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Loan, error) {
	const query = `
	SELECT id, book_id, member_id, issue_date, due_date, return_date, status
	FROM loans WHERE id = $1 LIMIT 1
	`
	var l Loan
	var ret sql.NullTime
	err := r.db.QueryRow(ctx, query, id).
		Scan(&l.ID, &l.BookID, &l.MemberID, &l.IssueDate, &l.DueDate, &ret, &l.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Loan{}, ErrLoanNotFound
		}
		return Loan{}, err
	}
	if ret.Valid {
		l.ReturnDate = &ret.Time
	}
	return l, nil
}

// Return closes the loan, releases its copy and persists the penalty (if
// any) atomically. The status guard in the UPDATE makes a concurrent second
// return lose cleanly instead of double-releasing.
func (r *PostgresRepo) Return(ctx context.Context, loanID string, returnDate time.Time, status Status, pen *penalty.Penalty) (Loan, error) {
	var out Loan
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		const query = `
		UPDATE loans
		SET return_date = $2, status = $3
		WHERE id = $1 AND status = 'ACTIVE'
		RETURNING id, book_id, member_id, issue_date, due_date, return_date, status
		`
		var ret sql.NullTime
		err := tx.QueryRow(ctx, query, loanID, returnDate, status).
			Scan(&out.ID, &out.BookID, &out.MemberID, &out.IssueDate, &out.DueDate, &ret, &out.Status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return r.classifyReturnMiss(ctx, tx, loanID)
			}
			return err
		}
		if ret.Valid {
			out.ReturnDate = &ret.Time
		}

		if err := r.ledger.ReleaseCopyIn(ctx, tx, out.BookID); err != nil {
			return err
		}

		if pen != nil {
			pen.LoanID = out.ID
			pen.MemberID = out.MemberID
			if err := r.penalties.Create(ctx, tx, pen); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Loan{}, err
	}
	return out, nil
}

func (r *PostgresRepo) classifyReturnMiss(ctx context.Context, q inventory.Querier, loanID string) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM loans WHERE id = $1)`, loanID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrLoanNotFound
	}
	return ErrAlreadyReturned
}

func (r *PostgresRepo) ListActiveForMember(ctx context.Context, memberID string) ([]Loan, error) {
	const query = `
	SELECT id, book_id, member_id, issue_date, due_date, return_date, status
	FROM loans
	WHERE member_id = $1 AND status = 'ACTIVE'
	ORDER BY issue_date ASC, id ASC
	`
	return r.queryLoans(ctx, query, memberID)
}

func (r *PostgresRepo) CountActiveForMember(ctx context.Context, memberID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM loans WHERE member_id = $1 AND status = 'ACTIVE'`, memberID).Scan(&n)
	return n, err
}

func (r *PostgresRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]Loan, error) {
	const query = `
	SELECT id, book_id, member_id, issue_date, due_date, return_date, status
	FROM loans
	WHERE status = 'ACTIVE' AND due_date < $1::date
	ORDER BY due_date ASC, id ASC
	`
	return r.queryLoans(ctx, query, asOf)
}

func (r *PostgresRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM loans WHERE status = 'ACTIVE'`).Scan(&n)
	return n, err
}

func (r *PostgresRepo) CountOverdue(ctx context.Context, asOf time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM loans WHERE status = 'ACTIVE' AND due_date < $1::date`, asOf).Scan(&n)
	return n, err
}

func (r *PostgresRepo) queryLoans(ctx context.Context, query string, args ...any) ([]Loan, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Loan
	for rows.Next() {
		var l Loan
		var ret sql.NullTime
		if err := rows.Scan(&l.ID, &l.BookID, &l.MemberID, &l.IssueDate, &l.DueDate, &ret, &l.Status); err != nil {
			return nil, err
		}
		if ret.Valid {
			l.ReturnDate = &ret.Time
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
