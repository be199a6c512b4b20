package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrBookNotFound  = errors.New("book not found")
	ErrOutOfStock    = errors.New("no copies available")
	ErrInvalidAdjust = errors.New("new total is below the number of issued copies")

	// ErrInvariantViolation means a release would push available above
	// total. Correct callers can never trigger it; it signals a double
	// return upstream.
	ErrInvariantViolation = errors.New("release would exceed total copies")
)

// Audit actions recorded for every ledger mutation.
const (
	ActionReserve = "reserve"
	ActionRelease = "release"
	ActionAdjust  = "adjust"
)

// AuditEntry is one row of the ledger's mutation log. Seq increases
// monotonically across all books.
type AuditEntry struct {
	Seq            int64     `json:"seq"`
	BookID         string    `json:"book_id"`
	Action         string    `json:"action"`
	Delta          int       `json:"delta"`
	AvailableAfter int       `json:"available_after"`
	TotalAfter     int       `json:"total_after"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so ledger
// mutations can run standalone or inside a caller's transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}
