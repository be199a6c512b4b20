package member

import (
	"errors"
	"time"
)

var (
	ErrNotFound            = errors.New("member not found")
	ErrDuplicateEmail      = errors.New("a member with this email already exists")
	ErrReferentialConflict = errors.New("member has outstanding loans or penalties")
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

// Member is a library patron. Suspended members keep their outstanding loans
// and may return them, but cannot receive new ones.
type Member struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
	Address  string    `json:"address,omitempty"`
	Status   Status    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}

func (m Member) Active() bool {
	return m.Status == StatusActive
}
