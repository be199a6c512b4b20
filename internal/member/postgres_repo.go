package member

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, m *Member) error {
	const query = `
	INSERT INTO members (id, name, email, phone, address, status)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
	RETURNING id, joined_at
	`
	err := r.db.QueryRow(ctx, query, m.Name, m.Email, m.Phone, m.Address, m.Status).
		Scan(&m.ID, &m.JoinedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Member, error) {
	const query = `
	SELECT id, name, email, phone, address, status, joined_at
	FROM members WHERE id = $1 LIMIT 1
	`
	var m Member
	err := r.db.QueryRow(ctx, query, id).
		Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Address, &m.Status, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Member{}, ErrNotFound
		}
		return Member{}, err
	}
	return m, nil
}

func (r *PostgresRepo) List(ctx context.Context, limit, offset int) ([]Member, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM members`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
	SELECT id, name, email, phone, address, status, joined_at
	FROM members
	ORDER BY joined_at DESC, id DESC
	LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Address, &m.Status, &m.JoinedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, m *Member) error {
	const query = `
	UPDATE members SET name = $2, email = $3, phone = $4, address = $5
	WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, m.ID, m.Name, m.Email, m.Phone, m.Address)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) SetStatus(ctx context.Context, id string, status Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE members SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	var outstanding int
	const outstandingSQL = `
	SELECT (SELECT COUNT(*) FROM loans WHERE member_id = $1 AND status = 'ACTIVE')
	     + (SELECT COUNT(*) FROM penalties WHERE member_id = $1 AND status = 'UNPAID')
	`
	if err := r.db.QueryRow(ctx, outstandingSQL, id).Scan(&outstanding); err != nil {
		return err
	}
	if outstanding > 0 {
		return ErrReferentialConflict
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrReferentialConflict
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM members`).Scan(&n)
	return n, err
}
