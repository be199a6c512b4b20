package auth

import (
	"errors"
	"time"
)

const (
	RoleLibrarian = "LIBRARIAN"
	RoleAdmin     = "ADMIN"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicateUser      = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is a staff account for the administrative API. Library members are a
// separate entity and never log in.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
