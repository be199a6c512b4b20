package loan

import (
	"errors"
	"time"
)

var (
	ErrLoanNotFound    = errors.New("loan not found")
	ErrAlreadyReturned = errors.New("loan already returned")
	ErrMemberSuspended = errors.New("member is suspended")
	ErrPenaltyHold     = errors.New("member has unpaid penalties above the hold threshold")
	ErrLoanLimit       = errors.New("member already holds the maximum number of books")
)

type Status string

const (
	StatusActive          Status = "ACTIVE"
	StatusReturned        Status = "RETURNED"
	StatusOverdueReturned Status = "OVERDUE_RETURNED"
)

// Loan records one member borrowing one copy for a bounded period. Once a
// loan leaves ACTIVE it is immutable; history is never deleted.
type Loan struct {
	ID         string     `json:"id"`
	BookID     string     `json:"book_id"`
	MemberID   string     `json:"member_id"`
	IssueDate  time.Time  `json:"issue_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     Status     `json:"status"`
}

// Overdue reports whether the loan would be overdue if returned at t. The
// due date itself is inclusive: returning on it is on time.
func (l Loan) Overdue(t time.Time) bool {
	return dateOf(t).After(dateOf(l.DueDate))
}

// OverdueDays counts whole calendar days between the due date and the
// return date. Zero when the return is on or before the due date.
func OverdueDays(due, returned time.Time) int {
	days := int(dateOf(returned).Sub(dateOf(due)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
