package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/highmark/consult-copilot/internal/config"
	"github.com/highmark/consult-copilot/internal/diagnosis"
	"github.com/highmark/consult-copilot/internal/extraction"
	"github.com/highmark/consult-copilot/internal/llm"
	"github.com/highmark/consult-copilot/internal/pipeline"
	"github.com/highmark/consult-copilot/internal/recommendation"
	"github.com/highmark/consult-copilot/internal/store"
)

// Server hosts the consulting session API.
type Server struct {
	httpServer *http.Server
	engines    pipeline.Engines
	recorder   pipeline.Recorder
	store      *store.Store
	llmClient  llm.Client
	sessions   *sessionRegistry
	validate   *validator.Validate
}

// New creates a server with all handlers and engine wiring configured.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client, err := llm.NewGeminiClient(ctx, cfg.LLMConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	s := &Server{
		engines: pipeline.Engines{
			Extractor:   extraction.NewEngine(client),
			Diagnoser:   diagnosis.NewEngine(client),
			Recommender: recommendation.NewEngine(client),
		},
		llmClient: client,
		sessions:  newSessionRegistry(),
		validate:  validator.New(),
	}

	// Persistence is optional. Without DATABASE_URL runs are kept in memory only.
	if cfg.DatabaseURL != "" {
		st, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			client.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		s.store = st
		s.recorder = st
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for analysis runs
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes registers every endpoint on a fresh mux.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Session lifecycle
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("PATCH /sessions/{id}/profile", s.handleUpdateProfile)
	mux.HandleFunc("POST /sessions/{id}/resume", s.handleImportResume)
	mux.HandleFunc("POST /sessions/{id}/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /sessions/{id}/analyze/stream", s.handleAnalyzeStream)
	mux.HandleFunc("POST /sessions/{id}/reset", s.handleReset)

	// Quote cart
	mux.HandleFunc("GET /sessions/{id}/quote", s.handleGetQuote)
	mux.HandleFunc("POST /sessions/{id}/quote/lines", s.handleAddCustomLine)
	mux.HandleFunc("POST /sessions/{id}/quote/lines/{line_id}/toggle", s.handleToggleLine)
	mux.HandleFunc("PATCH /sessions/{id}/quote/lines/{line_id}", s.handleUpdateLine)
	mux.HandleFunc("DELETE /sessions/{id}/quote/lines/{line_id}", s.handleRemoveLine)
	mux.HandleFunc("PUT /sessions/{id}/quote/discount", s.handleSetDiscount)
	mux.HandleFunc("PATCH /sessions/{id}/quote/proposal", s.handleUpdateProposal)

	// Knowledge base
	mux.HandleFunc("GET /catalog", s.handleGetCatalog)
	mux.HandleFunc("GET /playbook/objections", s.handleGetObjections)
	mux.HandleFunc("GET /form-options", s.handleGetFormOptions)

	// Persisted runs
	mux.HandleFunc("GET /runs", s.handleListRuns)

	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-stop:
		case <-ctx.Done():
			return ctx.Err()
		}
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()

	if s.store != nil {
		s.store.Close()
	}
	s.llmClient.Close()
	log.Println("Server stopped")
	return err
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// errorResponse writes a JSON error response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
