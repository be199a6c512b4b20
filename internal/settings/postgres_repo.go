package settings

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

func (r *PostgresRepo) Get(ctx context.Context) (Settings, error) {
	d := Defaults()
	const insertSQL = `
	INSERT INTO library_settings
		(id, library_name, address, contact, daily_rate_cents, max_penalty_cents, loan_days, max_books, hold_threshold_cents)
	VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, insertSQL,
		d.LibraryName, d.Address, d.Contact, d.DailyRateCents, d.MaxPenaltyCents,
		d.LoanDays, d.MaxBooks, d.HoldThresholdCents,
	); err != nil {
		return Settings{}, err
	}

	const query = `
	SELECT library_name, address, contact, daily_rate_cents, max_penalty_cents, loan_days, max_books, hold_threshold_cents
	FROM library_settings WHERE id = 1
	`
	var s Settings
	err := r.db.QueryRow(ctx, query).Scan(
		&s.LibraryName, &s.Address, &s.Contact, &s.DailyRateCents, &s.MaxPenaltyCents,
		&s.LoanDays, &s.MaxBooks, &s.HoldThresholdCents,
	)
	if err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (r *PostgresRepo) Update(ctx context.Context, s Settings) error {
	const query = `
	INSERT INTO library_settings
		(id, library_name, address, contact, daily_rate_cents, max_penalty_cents, loan_days, max_books, hold_threshold_cents)
	VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE SET
		library_name = EXCLUDED.library_name,
		address = EXCLUDED.address,
		contact = EXCLUDED.contact,
		daily_rate_cents = EXCLUDED.daily_rate_cents,
		max_penalty_cents = EXCLUDED.max_penalty_cents,
		loan_days = EXCLUDED.loan_days,
		max_books = EXCLUDED.max_books,
		hold_threshold_cents = EXCLUDED.hold_threshold_cents
	`
	_, err := r.db.Exec(ctx, query,
		s.LibraryName, s.Address, s.Contact, s.DailyRateCents, s.MaxPenaltyCents,
		s.LoanDays, s.MaxBooks, s.HoldThresholdCents,
	)
	return err
}
