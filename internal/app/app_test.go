package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskBoard/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			RequestTimeout: 5 * time.Second,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Logging:    config.LoggingConfig{Development: true},
		Repository: config.RepositoryConfig{Type: config.RepositoryInMemory},
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret",
			TokenTTL:             time.Hour,
			DefaultAdminPassword: "admin",
		},
	}
}

type client struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func (c *client) do(method, path string, body any) (int, map[string]any) {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.server.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func (c *client) login(username, password string) {
	c.t.Helper()
	code, body := c.do(http.MethodPost, "/auth/login", map[string]string{"username": username, "password": password})
	require.Equal(c.t, http.StatusOK, code)
	c.token = body["token"].(string)
}

// TestApp_EndToEnd проходит основной сценарий через роутер с inmemory хранилищем
func TestApp_EndToEnd(t *testing.T) {
	a := New(testConfig())
	require.NoError(t, a.Init(context.Background()))
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })

	server := httptest.NewServer(a.Handler())
	t.Cleanup(server.Close)

	anon := &client{t: t, server: server}
	code, _ := anon.do(http.MethodGet, "/tasks", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = anon.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = anon.do(http.MethodPost, "/auth/login", map[string]string{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)

	admin := &client{t: t, server: server}
	admin.login("admin", "admin")

	code, _ = admin.do(http.MethodPost, "/users", map[string]any{"username": "alice", "password": "pass1"})
	require.Equal(t, http.StatusCreated, code)
	code, _ = admin.do(http.MethodPost, "/users", map[string]any{"username": "alice", "password": "pass2"})
	assert.Equal(t, http.StatusConflict, code)

	alice := &client{t: t, server: server}
	alice.login("alice", "pass1")

	code, _ = alice.do(http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, body := alice.do(http.MethodPost, "/tasks", map[string]any{
		"userId": "mallory", "date": "2025-03-01", "category": "HR", "subcategory": "Annual Leave",
		"title": "PTO request", "startTime": "09:00", "endTime": "17:00",
	})
	require.Equal(t, http.StatusCreated, code)
	created := body["task"].(map[string]any)
	assert.Equal(t, "alice", created["userId"])
	assert.Equal(t, float64(480), created["durationMinutes"])
	assert.Equal(t, float64(1), created["statusId"])
	taskID := created["_id"].(string)

	code, body = alice.do(http.MethodPut, "/tasks/"+taskID, map[string]any{"endTime": "13:00", "durationMinutes": 5})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(240), body["task"].(map[string]any)["durationMinutes"])

	code, body = admin.do(http.MethodGet, "/tasks?viewMode=all", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["tasks"], 1)

	code, body = admin.do(http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["tasks"], 0)

	code, _ = admin.do(http.MethodGet, "/tasks?viewMode=user", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = alice.do(http.MethodGet, "/tasks/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = alice.do(http.MethodGet, "/tasks/summary", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["summary"].(map[string]any)["total"])

	code, body = alice.do(http.MethodPost, "/weekly-notes", map[string]any{"dayOfWeek": "Monday", "text": "call", "weekStart": "2025-03-03"})
	require.Equal(t, http.StatusCreated, code)
	noteID := body["note"].(map[string]any)["_id"].(string)

	code, body = alice.do(http.MethodPut, "/weekly-notes", map[string]any{"id": noteID, "done": true})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["note"].(map[string]any)["done"])

	code, body = alice.do(http.MethodDelete, "/weekly-notes?dayOfWeek=Monday&weekStart=2025-03-03", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["deletedCount"])

	code, _ = admin.do(http.MethodDelete, "/tasks/"+taskID, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = alice.do(http.MethodGet, "/tasks/"+taskID, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = alice.do(http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["statuses"], 4)
}
