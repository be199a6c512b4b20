package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-1", RoleLibrarian, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, RoleLibrarian, claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-1", RoleLibrarian, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("a-different-secret", token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-1", RoleLibrarian, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseToken_WrongSigningMethod(t *testing.T) {
	// alg=none tokens must never validate.
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Sub: "user-1", Role: RoleAdmin})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, signed)
	assert.Error(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Sekret123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Sekret123!", hash)

	assert.True(t, VerifyPassword(hash, "Sekret123!"))
	assert.False(t, VerifyPassword(hash, "sekret123!"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid", "Sekret123!", nil},
		{"too short", "Ab1!", ErrPasswordTooShort},
		{"no uppercase", "sekret123!", ErrPasswordNoUpper},
		{"no lowercase", "SEKRET123!", ErrPasswordNoLower},
		{"no number", "SekretPass!", ErrPasswordNoNumber},
		{"no special char", "Sekret1234", ErrPasswordNoSpecialChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password and defaults the role", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc := NewService(repo, testSecret, time.Hour)
		repo.On("Create", ctx, mock.AnythingOfType("*auth.User")).
			Run(func(args mock.Arguments) {
				u := args.Get(1).(*User)
				assert.NotEqual(t, "Sekret123!", u.Password)
				assert.True(t, VerifyPassword(u.Password, "Sekret123!"))
				assert.Equal(t, RoleLibrarian, u.Role)
			}).
			Return(nil)

		u, err := svc.Register(ctx, "desk", "desk@example.com", "Sekret123!", "SUPERUSER")
		require.NoError(t, err)
		assert.Empty(t, u.Password)
	})

	t.Run("weak password never reaches the repository", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc := NewService(repo, testSecret, time.Hour)

		_, err := svc.Register(ctx, "desk", "desk@example.com", "weak", "")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate surfaces", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc := NewService(repo, testSecret, time.Hour)
		repo.On("Create", ctx, mock.AnythingOfType("*auth.User")).Return(ErrDuplicateUser)

		_, err := svc.Register(ctx, "desk", "desk@example.com", "Sekret123!", "")
		assert.ErrorIs(t, err, ErrDuplicateUser)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := HashPassword("Sekret123!")
	require.NoError(t, err)
	stored := User{ID: "user-1", Username: "desk", Password: hash, Role: RoleAdmin}

	t.Run("valid credentials yield a parseable token", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc := NewService(repo, testSecret, time.Hour)
		repo.On("GetByUsername", ctx, "desk").Return(stored, nil)

		token, u, err := svc.Login(ctx, "desk", "Sekret123!")
		require.NoError(t, err)
		assert.Empty(t, u.Password)

		claims, err := ParseToken(testSecret, token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.Sub)
		assert.Equal(t, RoleAdmin, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc := NewService(repo, testSecret, time.Hour)
		repo.On("GetByUsername", ctx, "desk").Return(stored, nil)

		_, _, err := svc.Login(ctx, "desk", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user maps to invalid credentials", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc := NewService(repo, testSecret, time.Hour)
		repo.On("GetByUsername", ctx, "ghost").Return(User{}, ErrNotFound)

		_, _, err := svc.Login(ctx, "ghost", "Sekret123!")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
