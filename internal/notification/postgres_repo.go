package notification

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Add(ctx context.Context, message string) error {
	const insertSQL = `INSERT INTO notifications (id, message) VALUES (gen_random_uuid(), $1)`
	if _, err := r.db.Exec(ctx, insertSQL, message); err != nil {
		return err
	}

	// Trim everything older than the newest Keep entries.
	const trimSQL = `
	DELETE FROM notifications
	WHERE id NOT IN (
		SELECT id FROM notifications ORDER BY created_at DESC, id DESC LIMIT $1
	)`
	_, err := r.db.Exec(ctx, trimSQL, Keep)
	return err
}

func (r *PostgresRepo) List(ctx context.Context) ([]Notification, error) {
	const query = `
	SELECT id, message, read, created_at
	FROM notifications
	ORDER BY created_at DESC, id DESC
	LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, Keep)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) UnreadCount(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE read = FALSE`).Scan(&n)
	return n, err
}

func (r *PostgresRepo) MarkAllRead(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE read = FALSE`)
	return err
}

func (r *PostgresRepo) Clear(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM notifications`)
	return err
}
