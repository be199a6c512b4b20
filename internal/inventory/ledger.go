package inventory

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ledger is the source of truth for stock counts. All mutations go through
// conditional UPDATEs so two concurrent callers can never oversubscribe a
// book: the row lock serializes them and the WHERE clause rejects the loser.
type Ledger struct {
	db *pgxpool.Pool
}

func NewLedger(db *pgxpool.Pool) *Ledger {
	return &Ledger{db: db}
}

// ReserveCopy decrements available_copies if any copy is free. No effect on
// failure.
func (l *Ledger) ReserveCopy(ctx context.Context, bookID string) error {
	return pgx.BeginFunc(ctx, l.db, func(tx pgx.Tx) error {
		return l.ReserveCopyIn(ctx, tx, bookID)
	})
}

// ReserveCopyIn is ReserveCopy running on the caller's transaction.
func (l *Ledger) ReserveCopyIn(ctx context.Context, q Querier, bookID string) error {
	const query = `
	UPDATE books
	SET available_copies = available_copies - 1, updated_at = NOW()
	WHERE id = $1 AND available_copies > 0
	RETURNING available_copies, total_copies
	`
	var available, total int
	if err := q.QueryRow(ctx, query, bookID).Scan(&available, &total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return l.classifyMiss(ctx, q, bookID, ErrOutOfStock)
		}
		return err
	}
	return l.audit(ctx, q, bookID, ActionReserve, -1, available, total)
}

// ReleaseCopy increments available_copies. Failing because the increment
// would exceed total_copies indicates a double return upstream and is logged
// loudly.
func (l *Ledger) ReleaseCopy(ctx context.Context, bookID string) error {
	return pgx.BeginFunc(ctx, l.db, func(tx pgx.Tx) error {
		return l.ReleaseCopyIn(ctx, tx, bookID)
	})
}

// ReleaseCopyIn is ReleaseCopy running on the caller's transaction.
func (l *Ledger) ReleaseCopyIn(ctx context.Context, q Querier, bookID string) error {
	const query = `
	UPDATE books
	SET available_copies = available_copies + 1, updated_at = NOW()
	WHERE id = $1 AND available_copies < total_copies
	RETURNING available_copies, total_copies
	`
	var available, total int
	if err := q.QueryRow(ctx, query, bookID).Scan(&available, &total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			miss := l.classifyMiss(ctx, q, bookID, ErrInvariantViolation)
			if errors.Is(miss, ErrInvariantViolation) {
				log.Printf("INVARIANT release would exceed total copies: book_id=%s", bookID)
			}
			return miss
		}
		return err
	}
	return l.audit(ctx, q, bookID, ActionRelease, 1, available, total)
}

// AdjustStock sets total_copies, shifting available_copies by the same delta
// so issued copies stay accounted for. Fails when the new total is below the
// number of currently issued copies.
func (l *Ledger) AdjustStock(ctx context.Context, bookID string, newTotal int) error {
	if newTotal < 0 {
		return ErrInvalidAdjust
	}
	return pgx.BeginFunc(ctx, l.db, func(tx pgx.Tx) error {
		// RETURNING sees the updated row, so the pre-adjust total is carried
		// through a locked self-select instead.
		const query = `
		UPDATE books b
		SET available_copies = b.available_copies + ($2 - b.total_copies),
		    total_copies = $2,
		    updated_at = NOW()
		FROM (SELECT total_copies AS old_total FROM books WHERE id = $1 FOR UPDATE) o
		WHERE b.id = $1 AND $2 >= b.total_copies - b.available_copies
		RETURNING b.available_copies, b.total_copies, $2 - o.old_total
		`
		var available, total, delta int
		if err := tx.QueryRow(ctx, query, bookID, newTotal).Scan(&available, &total, &delta); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return l.classifyMiss(ctx, tx, bookID, ErrInvalidAdjust)
			}
			return err
		}
		return l.audit(ctx, tx, bookID, ActionAdjust, delta, available, total)
	})
}

// AvailableCopies reports the current available/total counts for a book.
func (l *Ledger) AvailableCopies(ctx context.Context, bookID string) (available, total int, err error) {
	const query = `SELECT available_copies, total_copies FROM books WHERE id = $1`
	err = l.db.QueryRow(ctx, query, bookID).Scan(&available, &total)
	if errors.Is(err, pgx.ErrNoRows) {
		err = ErrBookNotFound
	}
	return available, total, err
}

// AuditTrail returns the newest ledger entries for a book.
func (l *Ledger) AuditTrail(ctx context.Context, bookID string, limit int) ([]AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	const query = `
	SELECT seq, book_id, action, delta, available_after, total_after, recorded_at
	FROM stock_audit
	WHERE book_id = $1
	ORDER BY seq DESC
	LIMIT $2
	`
	rows, err := l.db.Query(ctx, query, bookID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.Seq, &e.BookID, &e.Action, &e.Delta, &e.AvailableAfter, &e.TotalAfter, &e.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// classifyMiss tells a missing book apart from a guard rejection after a
// zero-row conditional UPDATE.
func (l *Ledger) classifyMiss(ctx context.Context, q Querier, bookID string, guardErr error) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, bookID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrBookNotFound
	}
	return guardErr
}

func (l *Ledger) audit(ctx context.Context, q Querier, bookID, action string, delta, availableAfter, totalAfter int) error {
	const query = `
	INSERT INTO stock_audit (book_id, action, delta, available_after, total_after)
	VALUES ($1, $2, $3, $4, $5)
	`
	_, err := q.Exec(ctx, query, bookID, action, delta, availableAfter, totalAfter)
	return err
}
