// Package testutil carries shared fixtures and HTTP helpers for tests. It
// must not import the domain packages whose tests depend on it.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"libraryapi/internal/auth"

	"github.com/golang-jwt/jwt/v5"
)

const Secret = "test-secret"

// TestLibrarian is a staff fixture with the default role.
var TestLibrarian = auth.User{
	ID:       "user-librarian-1",
	Username: "librarian",
	Email:    "librarian@example.com",
	Password: "hashedpassword",
	Role:     auth.RoleLibrarian,
}

// TestAdmin is a staff fixture with the admin role.
var TestAdmin = auth.User{
	ID:       "user-admin-1",
	Username: "admin",
	Email:    "admin@example.com",
	Password: "hashedpassword",
	Role:     auth.RoleAdmin,
}

// GenerateTestToken signs a short-lived JWT for handler tests.
func GenerateTestToken(secret, userID, role string) string {
	token, _ := auth.GenerateToken(secret, userID, role, time.Hour)
	return token
}

// GenerateExpiredToken signs a token that expired an hour ago.
func GenerateExpiredToken(secret, userID, role string) string {
	c := auth.Claims{
		Sub:  userID,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	token, _ := t.SignedString([]byte(secret))
	return token
}

// NewRequest builds a test request, JSON-encoding body when non-nil.
func NewRequest(method, path string, body interface{}) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	bodyBytes, _ := json.Marshal(body)
	r := httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// NewRequestWithAuth builds a test request carrying a bearer token.
func NewRequestWithAuth(method, path string, body interface{}, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

// RecordResponse is a decoded recorder result.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse decodes the recorder's body as a JSON object.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}
