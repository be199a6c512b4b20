package penalty

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound       = errors.New("penalty not found")
	ErrAlreadyPaid    = errors.New("penalty already paid")
	ErrAmountMismatch = errors.New("payment amount does not match the penalty amount")
	ErrInvalidAmount  = errors.New("penalty amount must be positive")
)

type Status string

const (
	StatusUnpaid Status = "UNPAID"
	StatusPaid   Status = "PAID"
)

// Penalty is a monetary charge against a member. Amounts are integer cents.
type Penalty struct {
	ID          string     `json:"id"`
	LoanID      string     `json:"loan_id,omitempty"` // empty for manual penalties
	MemberID    string     `json:"member_id"`
	AmountCents int64      `json:"amount_cents"`
	Reason      string     `json:"reason"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

// Assess computes the charge for an overdue return: overdue days times the
// daily rate, clamped to the configured maximum. Pure; valid inputs cannot
// fail.
func Assess(loanID, memberID, bookTitle string, overdueDays int, dailyRateCents, maxPenaltyCents int64) Penalty {
	if overdueDays < 0 {
		overdueDays = 0
	}
	amount := int64(overdueDays) * dailyRateCents
	if maxPenaltyCents > 0 && amount > maxPenaltyCents {
		amount = maxPenaltyCents
	}
	return Penalty{
		LoanID:      loanID,
		MemberID:    memberID,
		AmountCents: amount,
		Reason:      fmt.Sprintf("Overdue: %s (%d days)", bookTitle, overdueDays),
		Status:      StatusUnpaid,
	}
}
