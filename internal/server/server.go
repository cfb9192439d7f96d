package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"codeberg.org/snonux/lingosheet/internal/batch"
	"codeberg.org/snonux/lingosheet/internal/chat"
	"codeberg.org/snonux/lingosheet/internal/history"
	"codeberg.org/snonux/lingosheet/internal/translation"
)

// DefaultMaxUploadBytes caps uploaded spreadsheets at 5 MiB
const DefaultMaxUploadBytes = 5 << 20

// multipartOverhead is the slack allowed on top of the file size for the
// other form fields and multipart boundaries
const multipartOverhead = 1 << 20

// maxMessageBytes caps the JSON body of a chat translation request
const maxMessageBytes = 1 << 20

// Config holds the HTTP server settings
type Config struct {
	Addr            string
	MaxUploadBytes  int64
	DefaultLanguage string
	ShutdownTimeout time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Addr:            ":8080",
		MaxUploadBytes:  DefaultMaxUploadBytes,
		DefaultLanguage: translation.DefaultLanguage,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Translator is what the handlers need from the translation layer
type Translator interface {
	batch.Translator
	chat.Localizer
	Ready() error
	ProviderName() string
}

// JobStore records and lists batch jobs
type JobStore interface {
	Record(ctx context.Context, job history.Job) error
	List(ctx context.Context, limit int) ([]history.Job, error)
}

// Server serves the translation API
type Server struct {
	config      *Config
	translator  Translator
	batchConfig *batch.Config
	jobs        JobStore
}

// New creates a server. jobs may be nil when history is disabled.
func New(config *Config, translator Translator, batchConfig *batch.Config, jobs JobStore) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	if batchConfig == nil {
		batchConfig = batch.DefaultConfig()
	}
	return &Server{
		config:      config,
		translator:  translator,
		batchConfig: batchConfig,
		jobs:        jobs,
	}
}

// Handler returns the routed handler wrapped in request logging
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /translate", s.handleTranslate)
	mux.HandleFunc("POST /translate-batch", s.handleTranslateBatch)
	mux.HandleFunc("GET /jobs", s.handleJobs)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return logRequests(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := s.translator.Ready(); err != nil {
		log.Printf("Warning: %v; translation requests will fail until it is set", err)
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}()

	log.Printf("listening on %s (provider %s)", s.config.Addr, s.translator.ProviderName())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-shutdownDone
	return nil
}
