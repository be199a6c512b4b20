package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"libraryapi/internal/auth"
	"libraryapi/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("generates an id when absent", func(t *testing.T) {
		var seen string
		h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestIDFrom(r)
		}))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get("X-Request-Id"))
	})

	t.Run("keeps a caller id", func(t *testing.T) {
		var seen string
		h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestIDFrom(r)
		}))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Request-Id", "caller-id-1")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, "caller-id-1", seen)
		assert.Equal(t, "caller-id-1", w.Header().Get("X-Request-Id"))
	})

	t.Run("replaces an oversized caller id", func(t *testing.T) {
		var seen string
		h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestIDFrom(r)
		}))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Request-Id", strings.Repeat("x", 200))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.NotEmpty(t, seen)
		assert.LessOrEqual(t, len(seen), 64)
		assert.Equal(t, seen, w.Header().Get("X-Request-Id"))
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	resp := testutil.RecordHTTPResponse(w)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	errObj, ok := resp.Body["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "INTERNAL_ERROR", errObj["code"])
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimitMiddleware(1, 2)
	h := rl.Middleware(okHandler())

	newReq := func() *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		return r
	}

	// The burst admits two requests, the third is rejected.
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, newReq())
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, newReq())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// A different client has its own budget.
	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	w = httptest.NewRecorder()
	h.ServeHTTP(w, other)
	assert.Equal(t, http.StatusOK, w.Code)

	// Ports do not split a client's budget: the first address already spent
	// it, so a new port on the same IP is still rejected.
	samePort := httptest.NewRequest(http.MethodGet, "/", nil)
	samePort.RemoteAddr = "10.0.0.1:9999"
	w = httptest.NewRecorder()
	h.ServeHTTP(w, samePort)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1", clientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", clientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", clientIP(r))
}

func TestAuthMiddleware(t *testing.T) {
	protected := AuthMiddleware(testutil.Secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "user-1", UserIDFrom(r))
		assert.Equal(t, auth.RoleLibrarian, RoleFrom(r))
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token passes and sets identity", func(t *testing.T) {
		token := testutil.GenerateTestToken(testutil.Secret, "user-1", auth.RoleLibrarian)
		r := testutil.NewRequestWithAuth(http.MethodGet, "/", nil, token)
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := testutil.GenerateExpiredToken(testutil.Secret, "user-1", auth.RoleLibrarian)
		r := testutil.NewRequestWithAuth(http.MethodGet, "/", nil, token)
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		token := testutil.GenerateTestToken("other-secret", "user-1", auth.RoleLibrarian)
		r := testutil.NewRequestWithAuth(http.MethodGet, "/", nil, token)
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	adminOnly := AuthMiddleware(testutil.Secret)(RequireRole(auth.RoleAdmin)(okHandler()))

	t.Run("admin passes", func(t *testing.T) {
		token := testutil.GenerateTestToken(testutil.Secret, "user-1", auth.RoleAdmin)
		w := httptest.NewRecorder()
		adminOnly.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodGet, "/", nil, token))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("librarian is forbidden", func(t *testing.T) {
		token := testutil.GenerateTestToken(testutil.Secret, "user-1", auth.RoleLibrarian)
		w := httptest.NewRecorder()
		adminOnly.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodGet, "/", nil, token))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCORSMiddleware(t *testing.T) {
	h := CORSMiddleware([]string{"https://app.example.com"})(okHandler())

	t.Run("allowed origin is echoed", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodOptions, "/", nil)
		r.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("other origin gets no header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	h := RequestSizeLimitMiddleware(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		if _, err := r.Body.Read(buf); err != nil && err.Error() == "http: request body too large" {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	small := testutil.NewRequest(http.MethodPost, "/", map[string]string{"a": "b"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, small)
	assert.Equal(t, http.StatusOK, w.Code)

	big := testutil.NewRequest(http.MethodPost, "/", map[string]string{"a": string(make([]byte, 256))})
	w = httptest.NewRecorder()
	h.ServeHTTP(w, big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
