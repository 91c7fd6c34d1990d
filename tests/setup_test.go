//nolint:errcheck // unchecked errors are acceptable in test files
package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/fluxbank/demo-bank/internal/activity"
	"github.com/fluxbank/demo-bank/internal/config"
	"github.com/fluxbank/demo-bank/internal/directory"
	"github.com/fluxbank/demo-bank/internal/handlers"
	"github.com/fluxbank/demo-bank/internal/service"
	"github.com/fluxbank/demo-bank/internal/store"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@fluxbank.test"
	adminPassword = "admin-password-1"
)

// TestServer wraps the HTTP test server and directory for integration tests.
type TestServer struct {
	Server    *httptest.Server
	Directory *directory.Directory
	t         *testing.T
}

// SetupTest creates a new test server over a fresh in-memory store.
func SetupTest(t *testing.T) *TestServer {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0"},
		Store:  config.StoreConfig{Backend: "memory"},
		Logger: config.LoggerConfig{Level: "error"},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := directory.New(store.NewMemoryStore())

	users := service.NewUserService(dir, activity.NewLogger(dir, logger), logger)
	require.NoError(t, users.SeedAdmin(context.Background(), adminEmail, adminPassword))

	router := handlers.NewRouter(dir, nil, cfg, logger)
	server := httptest.NewServer(router)

	return &TestServer{
		Server:    server,
		Directory: dir,
		t:         t,
	}
}

// Close shuts down the test server and the backing store.
func (ts *TestServer) Close() {
	ts.Server.Close()
	_ = ts.Directory.Close()
}

// URL returns the full URL for a given path.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}

// Post sends a JSON POST request with an optional idempotency key.
func (ts *TestServer) Post(t *testing.T, path string, body map[string]any, idempotencyKey string) *http.Response {
	t.Helper()
	return ts.send(t, http.MethodPost, path, body, idempotencyKey)
}

// Patch sends a JSON PATCH request.
func (ts *TestServer) Patch(t *testing.T, path string, body map[string]any) *http.Response {
	t.Helper()
	return ts.send(t, http.MethodPatch, path, body, "")
}

// Get sends a GET request acting as the given user.
func (ts *TestServer) Get(t *testing.T, path, email string) *http.Response {
	t.Helper()

	u := ts.URL(path)
	if email != "" {
		u += "?email=" + url.QueryEscape(email)
	}

	resp, err := http.Get(u)
	require.NoError(t, err)
	return resp
}

// Delete sends a DELETE request acting as the given user.
func (ts *TestServer) Delete(t *testing.T, path, email string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, ts.URL(path)+"?email="+url.QueryEscape(email), nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func (ts *TestServer) send(t *testing.T, method, path string, body map[string]any, idempotencyKey string) *http.Response {
	t.Helper()

	jsonBody, _ := json.Marshal(body)

	req, err := http.NewRequest(method, ts.URL(path), bytes.NewReader(jsonBody))
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// decode parses a JSON response body into a generic map and closes it.
func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	return body
}

// decodeList parses a JSON array response body and closes it.
func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()

	var body []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	return body
}

// SignUpUser registers a user and returns their email.
func (ts *TestServer) SignUpUser(t *testing.T, email, firstName, lastName string) {
	t.Helper()

	resp := ts.Post(t, "/api/v1/signup", map[string]any{
		"firstName": firstName,
		"lastName":  lastName,
		"email":     email,
		"phone":     "555-0100",
		"password":  "integration-pass",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

// OpenAccount creates an account and returns its ID and account number.
func (ts *TestServer) OpenAccount(t *testing.T, email, accountType string) (string, string) {
	t.Helper()

	resp := ts.Post(t, "/api/v1/accounts", map[string]any{
		"email": email,
		"type":  accountType,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decode(t, resp)
	return body["id"].(string), body["accountNumber"].(string)
}
