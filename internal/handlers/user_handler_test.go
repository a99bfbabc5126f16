// File: internal/handlers/user_handler_test.go
package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileReportsRecordCount(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123")
	token := env.login(t, "alice", "secret123")

	rr := env.do(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var profile struct {
		Username    string `json:"username"`
		RecordCount int64  `json:"record_count"`
	}
	decodeBody(t, rr, &profile)
	assert.Equal(t, "alice", profile.Username)
	assert.Zero(t, profile.RecordCount)

	env.createRecord(t, token, "One", "text one")
	env.createRecord(t, token, "Two", "text two")

	rr = env.do(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	decodeBody(t, rr, &profile)
	assert.EqualValues(t, 2, profile.RecordCount)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123")
	env.register(t, "bob", "bob@example.com", "secret456")
	token := env.login(t, "alice", "secret123")

	rr := env.do(t, http.MethodPut, "/api/users/me", token, map[string]string{
		"email":     "alice+new@example.com",
		"full_name": "Alice B. Smith",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "alice+new@example.com")
	assert.Contains(t, rr.Body.String(), "Alice B. Smith")

	// Bob's address is taken.
	rr = env.do(t, http.MethodPut, "/api/users/me", token, map[string]string{
		"email": "bob@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Email already registered")

	// Password change takes effect immediately.
	rr = env.do(t, http.MethodPut, "/api/users/me", token, map[string]string{
		"password": "rotated-secret-9",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code, "old password must stop working")
	env.login(t, "alice", "rotated-secret-9")
}

func TestDashboardCounts(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123")
	token := env.login(t, "alice", "secret123")

	first := env.createRecord(t, token, "First", "BP 120/80")
	env.createRecord(t, token, "Second", "Cholesterol 190")
	env.createRecord(t, token, "Third", "Glucose 95")

	env.provider.configure("All values in range.")
	rr := env.do(t, http.MethodPost, fmt.Sprintf("/api/ai/explain/%d", first), token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = env.do(t, http.MethodGet, "/api/users/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var dash struct {
		TotalRecords           int64 `json:"total_records"`
		RecordsWithTranslation int64 `json:"records_with_translation"`
		RecordsWithSuggestions int64 `json:"records_with_suggestions"`
		RecentRecords          []struct {
			Title          string `json:"title"`
			HasTranslation bool   `json:"has_translation"`
		} `json:"recent_records"`
	}
	decodeBody(t, rr, &dash)
	assert.EqualValues(t, 3, dash.TotalRecords)
	assert.EqualValues(t, 1, dash.RecordsWithTranslation)
	assert.EqualValues(t, 1, dash.RecordsWithSuggestions)
	assert.Len(t, dash.RecentRecords, 3)
}
