// File: internal/handlers/knowledge_handler_test.go
package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeCreateAndList(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123")
	token := env.login(t, "alice", "secret123")

	rr := env.do(t, http.MethodPost, "/api/knowledge", "", map[string]string{
		"title":   "Hypertension basics",
		"content": "Blood pressure above 140/90 is considered high.",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/knowledge", token, map[string]string{
		"title": "Missing content",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "content")

	rr = env.do(t, http.MethodPost, "/api/knowledge", token, map[string]interface{}{
		"title":   "Hypertension basics",
		"content": "Blood pressure above 140/90 is considered high.",
		"source":  "AHA guidelines",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created struct {
		ID     uint    `json:"id"`
		Source *string `json:"source"`
	}
	decodeBody(t, rr, &created)
	assert.NotZero(t, created.ID)
	require.NotNil(t, created.Source)
	assert.Equal(t, "AHA guidelines", *created.Source)

	rr = env.do(t, http.MethodGet, "/api/knowledge", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list []struct {
		Title string `json:"title"`
	}
	decodeBody(t, rr, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Hypertension basics", list[0].Title)
}
