package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

const bookColumns = `id, isbn, title, author_id, publisher_id, cover_url, total_copies, available_copies, created_at, updated_at`

func scanBook(row pgx.Row, b *Book) error {
	return row.Scan(
		&b.ID, &b.ISBN, &b.Title, &b.AuthorID, &b.PublisherID, &b.CoverURL,
		&b.TotalCopies, &b.AvailableCopies, &b.CreatedAt, &b.UpdatedAt,
	)
}

func (r *PostgresRepo) CreateBook(ctx context.Context, b *Book) error {
	const query = `
	INSERT INTO books (id, isbn, title, author_id, publisher_id, cover_url, total_copies, available_copies)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7)
	RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		b.ISBN, b.Title, b.AuthorID, b.PublisherID, b.CoverURL, b.TotalCopies, b.AvailableCopies,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateISBN
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) GetBookByID(ctx context.Context, id string) (Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = $1 LIMIT 1`, bookColumns)
	var b Book
	if err := scanBook(r.db.QueryRow(ctx, query, id), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrBookNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) GetBookByISBN(ctx context.Context, isbn string) (Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE isbn = $1 LIMIT 1`, bookColumns)
	var b Book
	if err := scanBook(r.db.QueryRow(ctx, query, isbn), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrBookNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) ListBooks(ctx context.Context, q Query) ([]Book, int, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if q.Q != "" {
		clauses = append(clauses, fmt.Sprintf("(isbn ILIKE $%d OR title ILIKE $%d)", argn, argn+1))
		pattern := "%" + q.Q + "%"
		args = append(args, pattern, pattern)
		argn += 2
	}
	if q.AuthorID != "" {
		clauses = append(clauses, fmt.Sprintf("author_id = $%d", argn))
		args = append(args, q.AuthorID)
		argn++
	}
	if q.PublisherID != "" {
		clauses = append(clauses, fmt.Sprintf("publisher_id = $%d", argn))
		args = append(args, q.PublisherID)
		argn++
	}

	where := "WHERE " + strings.Join(clauses, " AND ")

	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM books %s", where)
	var total int
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := fmt.Sprintf(`
		SELECT %s
		FROM books
		%s
		ORDER BY title ASC
		LIMIT $%d OFFSET $%d`,
		bookColumns, where, argn, argn+1)

	args = append(args, q.Limit, q.Offset)
	rows, err := r.db.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(
			&b.ID, &b.ISBN, &b.Title, &b.AuthorID, &b.PublisherID, &b.CoverURL,
			&b.TotalCopies, &b.AvailableCopies, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) UpdateBook(ctx context.Context, b *Book) error {
	const query = `
	UPDATE books
	SET isbn = $2, title = $3, author_id = $4, publisher_id = $5, cover_url = $6, updated_at = NOW()
	WHERE id = $1
	RETURNING total_copies, available_copies, updated_at
	`
	err := r.db.QueryRow(ctx, query, b.ID, b.ISBN, b.Title, b.AuthorID, b.PublisherID, b.CoverURL).
		Scan(&b.TotalCopies, &b.AvailableCopies, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrBookNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateISBN
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) DeleteBook(ctx context.Context, id string) error {
	var active int
	const activeSQL = `SELECT COUNT(*) FROM loans WHERE book_id = $1 AND status = 'ACTIVE'`
	if err := r.db.QueryRow(ctx, activeSQL, id).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return ErrReferentialConflict
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrReferentialConflict
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBookNotFound
	}
	return nil
}

func (r *PostgresRepo) CountBooks(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&n)
	return n, err
}

func (r *PostgresRepo) CreateAuthor(ctx context.Context, a *Author) error {
	const query = `
	INSERT INTO authors (id, name, bio)
	VALUES (gen_random_uuid(), $1, $2)
	RETURNING id
	`
	return r.db.QueryRow(ctx, query, a.Name, a.Bio).Scan(&a.ID)
}

func (r *PostgresRepo) GetAuthorByID(ctx context.Context, id string) (Author, error) {
	var a Author
	err := r.db.QueryRow(ctx, `SELECT id, name, bio FROM authors WHERE id = $1 LIMIT 1`, id).
		Scan(&a.ID, &a.Name, &a.Bio)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Author{}, ErrAuthorNotFound
		}
		return Author{}, err
	}
	return a, nil
}

func (r *PostgresRepo) ListAuthors(ctx context.Context) ([]Author, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, bio FROM authors ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Author
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) UpdateAuthor(ctx context.Context, a *Author) error {
	tag, err := r.db.Exec(ctx, `UPDATE authors SET name = $2, bio = $3 WHERE id = $1`, a.ID, a.Name, a.Bio)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAuthorNotFound
	}
	return nil
}

func (r *PostgresRepo) DeleteAuthor(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrReferentialConflict
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAuthorNotFound
	}
	return nil
}

func (r *PostgresRepo) CreatePublisher(ctx context.Context, p *Publisher) error {
	const query = `
	INSERT INTO publishers (id, name, address)
	VALUES (gen_random_uuid(), $1, $2)
	RETURNING id
	`
	return r.db.QueryRow(ctx, query, p.Name, p.Address).Scan(&p.ID)
}

func (r *PostgresRepo) GetPublisherByID(ctx context.Context, id string) (Publisher, error) {
	var p Publisher
	err := r.db.QueryRow(ctx, `SELECT id, name, address FROM publishers WHERE id = $1 LIMIT 1`, id).
		Scan(&p.ID, &p.Name, &p.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Publisher{}, ErrPublisherNotFound
		}
		return Publisher{}, err
	}
	return p, nil
}

func (r *PostgresRepo) ListPublishers(ctx context.Context) ([]Publisher, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, address FROM publishers ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Publisher
	for rows.Next() {
		var p Publisher
		if err := rows.Scan(&p.ID, &p.Name, &p.Address); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) UpdatePublisher(ctx context.Context, p *Publisher) error {
	tag, err := r.db.Exec(ctx, `UPDATE publishers SET name = $2, address = $3 WHERE id = $1`, p.ID, p.Name, p.Address)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPublisherNotFound
	}
	return nil
}

func (r *PostgresRepo) DeletePublisher(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM publishers WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrReferentialConflict
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPublisherNotFound
	}
	return nil
}
