// File: internal/handlers/handler_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/medbridge/go-medbridge/internal/domain"
	"github.com/medbridge/go-medbridge/internal/middleware"
	"github.com/medbridge/go-medbridge/internal/repository/knowledge"
	"github.com/medbridge/go-medbridge/internal/repository/medication"
	"github.com/medbridge/go-medbridge/internal/repository/record"
	"github.com/medbridge/go-medbridge/internal/repository/user"
	"github.com/medbridge/go-medbridge/internal/services/ai"
	"github.com/medbridge/go-medbridge/internal/services/chat"
	"github.com/medbridge/go-medbridge/internal/services/index"
	"github.com/medbridge/go-medbridge/internal/services/medications"
	"github.com/medbridge/go-medbridge/internal/services/records"
	"github.com/medbridge/go-medbridge/internal/services/users"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Warn(string, ...interface{})  {}

// scriptedProvider is a completion backend whose behavior tests can adjust
// mid-flight: unconfigured, failing, or answering with a fixed text.
type scriptedProvider struct {
	mu         sync.Mutex
	configured bool
	vision     bool
	text       string
	fail       bool
	calls      int
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Configured() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.configured
}

func (p *scriptedProvider) SupportsVision() bool { return p.vision }

func (p *scriptedProvider) Complete(context.Context, ai.CompletionRequest) ai.ProviderResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.fail {
		return ai.Failure(errors.New("scripted failure"))
	}
	return ai.Success(p.text)
}

func (p *scriptedProvider) configure(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.configured = true
	p.fail = false
	p.text = text
}

func (p *scriptedProvider) failAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.configured = true
	p.fail = true
}

func (p *scriptedProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type stubExtractor struct {
	text       string
	confidence float64
}

func (s stubExtractor) ExtractText([]byte) (string, float64, error) {
	return s.text, s.confidence, nil
}

// testEnv wires real services over in-memory storage behind the same route
// table the server uses.
type testEnv struct {
	router   *mux.Router
	provider *scriptedProvider
	db       *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.MedicalRecord{},
		&domain.Medication{},
		&domain.KnowledgeEntry{},
	))

	provider := &scriptedProvider{}
	gateway := ai.NewGatewayFromProviders(ai.DefaultConfig(), noopLogger{}, []ai.Provider{provider}, nil)

	idx, err := index.New(&index.Config{Path: filepath.Join(t.TempDir(), "index.json")}, gateway, noopLogger{})
	require.NoError(t, err)

	userRepo := user.NewGormUserRepository(db)
	recordRepo := record.NewGormRecordRepository(db)
	medicationRepo := medication.NewGormMedicationRepository(db)
	knowledgeRepo := knowledge.NewGormKnowledgeRepository(db)

	userService := users.NewService(userRepo, "handler-test-secret", 60, noopLogger{})
	recordService := records.NewService(recordRepo, gateway, idx, stubExtractor{text: "BP 140/90", confidence: 0.9}, noopLogger{})
	medicationService := medications.NewService(medicationRepo, noopLogger{})
	chatService := chat.NewService(gateway, idx, medicationService, noopLogger{})

	authHandler := NewAuthHandler(userService)
	userHandler := NewUserHandler(userService, recordService)
	recordHandler := NewRecordHandler(recordService)
	aiHandler := NewAIHandler(gateway, recordService, chatService)
	medicationHandler := NewMedicationHandler(medicationService)
	knowledgeHandler := NewKnowledgeHandler(knowledgeRepo)

	r := mux.NewRouter()
	authMiddleware := middleware.NewAuthMiddleware(userService)

	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	r.HandleFunc("/api/medications", medicationHandler.List).Methods("GET")
	r.HandleFunc("/api/medications/search", medicationHandler.Search).Methods("GET")
	r.HandleFunc("/api/medications/extract", medicationHandler.Extract).Methods("POST")
	r.HandleFunc("/api/medications/name/{name}", medicationHandler.GetByName).Methods("GET")
	r.HandleFunc("/api/medications/{id:[0-9]+}", medicationHandler.Get).Methods("GET")

	aiRoutes := r.PathPrefix("/api/ai").Subrouter()
	aiRoutes.Use(authMiddleware)
	aiRoutes.HandleFunc("/translate", aiHandler.Translate).Methods("POST")
	aiRoutes.HandleFunc("/suggestions", aiHandler.Suggestions).Methods("POST")
	aiRoutes.HandleFunc("/explain/{id:[0-9]+}", aiHandler.Explain).Methods("POST")
	aiRoutes.HandleFunc("/chat", aiHandler.Chat).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)
	api.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	api.HandleFunc("/users/me", userHandler.Profile).Methods("GET")
	api.HandleFunc("/users/me", userHandler.UpdateProfile).Methods("PUT")
	api.HandleFunc("/users/dashboard", userHandler.Dashboard).Methods("GET")
	api.HandleFunc("/records", recordHandler.Create).Methods("POST")
	api.HandleFunc("/records", recordHandler.List).Methods("GET")
	api.HandleFunc("/records/{id:[0-9]+}", recordHandler.Get).Methods("GET")
	api.HandleFunc("/records/{id:[0-9]+}", recordHandler.Update).Methods("PUT")
	api.HandleFunc("/records/{id:[0-9]+}", recordHandler.Delete).Methods("DELETE")
	api.HandleFunc("/medications", medicationHandler.Create).Methods("POST")
	api.HandleFunc("/knowledge", knowledgeHandler.Create).Methods("POST")
	api.HandleFunc("/knowledge", knowledgeHandler.List).Methods("GET")

	return &testEnv{router: r, provider: provider, db: db}
}

// do sends a JSON request through the router and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) register(t *testing.T, username, email, password string) {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decodeBody(t, rr, &resp)
	require.Equal(t, "bearer", resp.TokenType)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func (e *testEnv) createRecord(t *testing.T, token, title, text string) uint {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/records", token, map[string]string{
		"title":         title,
		"original_text": text,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	decodeBody(t, rr, &resp)
	require.NotZero(t, resp.ID)
	return resp.ID
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dst))
}
