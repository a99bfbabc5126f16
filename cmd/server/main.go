// File: cmd/server/main.go
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/medbridge/go-medbridge/internal/config"
	"github.com/medbridge/go-medbridge/internal/domain"
	"github.com/medbridge/go-medbridge/internal/handlers"
	"github.com/medbridge/go-medbridge/internal/middleware"
	"github.com/medbridge/go-medbridge/internal/ratelimit"
	"github.com/medbridge/go-medbridge/internal/repository/knowledge"
	"github.com/medbridge/go-medbridge/internal/repository/medication"
	"github.com/medbridge/go-medbridge/internal/repository/record"
	"github.com/medbridge/go-medbridge/internal/repository/user"
	"github.com/medbridge/go-medbridge/internal/services"
	"github.com/medbridge/go-medbridge/internal/services/ai"
	"github.com/medbridge/go-medbridge/internal/services/chat"
	"github.com/medbridge/go-medbridge/internal/services/index"
	"github.com/medbridge/go-medbridge/internal/services/medications"
	"github.com/medbridge/go-medbridge/internal/services/ocr"
	"github.com/medbridge/go-medbridge/internal/services/records"
	"github.com/medbridge/go-medbridge/internal/services/users"
)

func corsMiddleware(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func jsonError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func main() {
	cfg := config.Load()

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.MedicalRecord{},
		&domain.Medication{},
		&domain.KnowledgeEntry{},
	); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := user.NewGormUserRepository(db)
	recordRepo := record.NewGormRecordRepository(db)
	medicationRepo := medication.NewGormMedicationRepository(db)
	knowledgeRepo := knowledge.NewGormKnowledgeRepository(db)

	// --- AI gateway, embedding index, OCR ---
	aiConfig := ai.DefaultConfig()
	aiConfig.GroqAPIKey = cfg.GroqAPIKey
	aiConfig.GroqModel = cfg.GroqModel
	aiConfig.GroqVisionModel = cfg.GroqVisionModel
	aiConfig.HuggingFaceAPIKey = cfg.HuggingFaceAPIKey
	aiConfig.HuggingFaceModel = cfg.HuggingFaceModel
	aiConfig.EmbeddingModel = cfg.EmbeddingModel
	aiConfig.OllamaBaseURL = cfg.OllamaBaseURL
	aiConfig.OllamaModel = cfg.OllamaModel
	aiConfig.OllamaEmbeddingModel = cfg.OllamaEmbeddingModel
	aiConfig.Temperature = cfg.AITemperature
	aiConfig.MaxTokens = cfg.AIMaxTokens

	gateway, err := ai.NewCompletionGateway(aiConfig, services.NewLogger("ai"))
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize AI gateway: %v", err)
	}

	searchIndex, err := index.New(&index.Config{Path: cfg.KnowledgeBasePath}, gateway, services.NewLogger("index"))
	if err != nil {
		log.Fatalf("FATAL: Failed to open embedding index: %v", err)
	}

	ocrAdapter := ocr.NewAdapter(services.NewLogger("ocr"))

	// --- Services ---
	userService := users.NewService(userRepo, cfg.JWTSecretKey, cfg.JWTExpiryMinutes, services.NewLogger("users"))
	recordService := records.NewService(recordRepo, gateway, searchIndex, ocrAdapter, services.NewLogger("records"))
	medicationService := medications.NewService(medicationRepo, services.NewLogger("medications"))
	chatService := chat.NewService(gateway, searchIndex, medicationService, services.NewLogger("chat"))

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService, recordService)
	recordHandler := handlers.NewRecordHandler(recordService)
	aiHandler := handlers.NewAIHandler(gateway, recordService, chatService)
	medicationHandler := handlers.NewMedicationHandler(medicationService)
	knowledgeHandler := handlers.NewKnowledgeHandler(knowledgeRepo)

	// --- Rate limiters ---
	authLimiter := ratelimit.NewMemoryLimiter(ratelimit.DefaultAuthConfig())
	aiLimiter := ratelimit.NewMemoryLimiter(ratelimit.PerMinuteConfig(cfg.RateLimitPerMinute))

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewAuthMiddleware(userService)

	r.Use(corsMiddleware(cfg.AllowedOrigin))
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")

	// --- Public Routes ---
	authRoutes := r.PathPrefix("/api/auth").Subrouter()
	authRoutes.Use(middleware.RateLimitMiddleware(authLimiter, "Auth"))
	authRoutes.Use(middleware.AuthSuccessMiddleware(authLimiter, "Auth"))
	authRoutes.HandleFunc("/register", authHandler.Register).Methods("POST")
	authRoutes.HandleFunc("/login", authHandler.Login).Methods("POST")

	r.HandleFunc("/api/medications", medicationHandler.List).Methods("GET")
	r.HandleFunc("/api/medications/search", medicationHandler.Search).Methods("GET")
	r.HandleFunc("/api/medications/extract", medicationHandler.Extract).Methods("POST")
	r.HandleFunc("/api/medications/name/{name}", medicationHandler.GetByName).Methods("GET")
	r.HandleFunc("/api/medications/{id:[0-9]+}", medicationHandler.Get).Methods("GET")

	// --- AI Routes (authenticated, per-minute limited) ---
	aiRoutes := r.PathPrefix("/api/ai").Subrouter()
	aiRoutes.Use(authMiddleware)
	aiRoutes.Use(middleware.RateLimitMiddleware(aiLimiter, "AI"))
	aiRoutes.HandleFunc("/translate", aiHandler.Translate).Methods("POST")
	aiRoutes.HandleFunc("/suggestions", aiHandler.Suggestions).Methods("POST")
	aiRoutes.HandleFunc("/explain/{id:[0-9]+}", aiHandler.Explain).Methods("POST")
	aiRoutes.HandleFunc("/chat", aiHandler.Chat).Methods("POST")

	// --- Protected Routes ---
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

	// --- Custom Error Handlers ---
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("MedBridge API starting on port %s", cfg.ServerPort)
	log.Printf("Database: %s | Embedding index: %s", cfg.DatabasePath, cfg.KnowledgeBasePath)

	// --- Start Server in Goroutine ---
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	authLimiter.Stop()
	aiLimiter.Stop()
	log.Println("Server stopped gracefully")
}
