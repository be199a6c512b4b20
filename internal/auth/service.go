package auth

import (
	"context"
	"time"
)

type Service struct {
	repo     Repository
	secret   string
	tokenTTL time.Duration
}

func NewService(repo Repository, secret string, tokenTTL time.Duration) *Service {
	return &Service{repo: repo, secret: secret, tokenTTL: tokenTTL}
}

// Register creates a staff account with a hashed password.
func (s *Service) Register(ctx context.Context, username, email, password, role string) (User, error) {
	if err := ValidatePasswordStrength(password); err != nil {
		return User{}, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}
	if role != RoleAdmin {
		role = RoleLibrarian
	}
	u := User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     role,
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return User{}, err
	}
	u.Password = ""
	return u, nil
}

// Login verifies credentials and returns a signed token plus the account.
func (s *Service) Login(ctx context.Context, username, password string) (string, User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", User{}, ErrInvalidCredentials
	}
	if !VerifyPassword(u.Password, password) {
		return "", User{}, ErrInvalidCredentials
	}
	token, err := GenerateToken(s.secret, u.ID, u.Role, s.tokenTTL)
	if err != nil {
		return "", User{}, err
	}
	u.Password = ""
	return token, u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	u.Password = ""
	return u, nil
}
