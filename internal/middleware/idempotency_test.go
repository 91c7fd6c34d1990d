package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fluxbank/demo-bank/internal/config"
	"github.com/fluxbank/demo-bank/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdempotencyRepo struct {
	entries map[string]*models.IdempotencyKey
}

func newFakeIdempotencyRepo() *fakeIdempotencyRepo {
	return &fakeIdempotencyRepo{entries: make(map[string]*models.IdempotencyKey)}
}

func (r *fakeIdempotencyRepo) Get(_ context.Context, key, requestPath string) (*models.IdempotencyKey, error) {
	return r.entries[key+"|"+requestPath], nil
}

func (r *fakeIdempotencyRepo) Store(_ context.Context, idemKey *models.IdempotencyKey) error {
	r.entries[idemKey.Key+"|"+idemKey.RequestPath] = idemKey
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIdempotencyReplaysCachedResponse(t *testing.T) {
	repo := newFakeIdempotencyRepo()

	var calls int32
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"debit":{"id":"t1"}}`))
	})

	handler := Idempotency(repo, discardLogger())(inner)

	doPost := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "abc-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := doPost()
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Empty(t, first.Header().Get("X-Idempotent-Replayed"))

	second := doPost()
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotent-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "the handler must run only once")
}

func TestIdempotencyWithoutKeyRunsEveryTime(t *testing.T) {
	repo := newFakeIdempotencyRepo()

	var calls int32
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusCreated)
	})

	handler := Idempotency(repo, discardLogger())(inner)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotencyIgnoresErrorResponses(t *testing.T) {
	repo := newFakeIdempotencyRepo()

	var calls int32
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusPaymentRequired)
	})

	handler := Idempotency(repo, discardLogger())(inner)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "abc-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	}

	// failed responses are never cached, the client may retry
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRequiresIdempotency(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		want   bool
	}{
		{"transfer", http.MethodPost, "/api/v1/transfers", true},
		{"quick transfer", http.MethodPost, "/api/v1/transfers/quick", true},
		{"request approval", http.MethodPost, "/api/v1/money-requests/abc/approve", true},
		{"request rejection", http.MethodPost, "/api/v1/money-requests/abc/reject", false},
		{"get is exempt", http.MethodGet, "/api/v1/transfers", false},
		{"signup is exempt", http.MethodPost, "/api/v1/signup", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			assert.Equal(t, tt.want, requiresIdempotency(req))
		})
	}
}

func TestLatencyPassThrough(t *testing.T) {
	handler := Latency(&config.AppConfig{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	start := time.Now()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Less(t, time.Since(start), time.Second, "zero bounds must not delay requests")
}

func TestLatencyExcludesHealth(t *testing.T) {
	assert.True(t, isExcludedPath("/health"))
	assert.False(t, isExcludedPath("/api/v1/accounts"))
}
