// Package server exposes the oracle over HTTP.
//
// Routes:
//
//	POST /import-csv      multipart upload (field "file"), replaces the draw history
//	GET  /analyze-stats   digit distribution and category percentages
//	GET  /predict         three forecast entries
//	GET  /healthz         liveness and current series size
//
// When no draws have been imported the read routes answer 200 with
// {"error": "No data available"}, which is what the dashboard expects.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/rewired-gh/draworacle/internal/config"
	"github.com/rewired-gh/draworacle/internal/ingest"
	"github.com/rewired-gh/draworacle/internal/logger"
	"github.com/rewired-gh/draworacle/internal/models"
	"github.com/rewired-gh/draworacle/internal/oracle"
)

const noDataMessage = "No data available"

// DrawService is the part of the oracle the HTTP layer needs
type DrawService interface {
	Import(ctx context.Context, records []models.DrawRecord) oracle.ImportResult
	Statistics() (*models.Statistics, error)
	Predictions() ([]models.PredictionResult, error)
	Count() int
	LastImportID() string
}

// Server handles HTTP requests for the draw oracle
type Server struct {
	svc     DrawService
	cfg     config.ServerConfig
	handler http.Handler
}

// New creates a Server
func New(svc DrawService, cfg config.ServerConfig) *Server {
	s := &Server{svc: svc, cfg: cfg}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /import-csv", s.handleImport)
	mux.HandleFunc("GET /analyze-stats", s.handleStats)
	mux.HandleFunc("GET /predict", s.handlePredict)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	})
	s.handler = logRequests(c.Handler(mux))

	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening on %s", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	logger.Info("Shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

type importResponse struct {
	Status       string `json:"status"`
	NumbersCount int    `json:"numbers_count"`
	ImportID     string `json:"import_id"`
}

type statsResponse struct {
	Stats             models.CategoryStats     `json:"stats"`
	DigitDistribution models.DistributionChart `json:"digit_distribution"`
}

type predictResponse struct {
	Predictions []models.PredictionResult `json:"predictions"`
}

type healthResponse struct {
	Status       string `json:"status"`
	NumbersCount int    `json:"numbers_count"`
	ImportID     string `json:"import_id,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes())
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes()); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid upload: %v", err)})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "file is required"})
		return
	}
	defer file.Close()

	records, err := ingest.ParseCSV(file)
	if err != nil {
		logger.Warn("Rejected CSV import: %v", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result := s.svc.Import(r.Context(), records)
	writeJSON(w, http.StatusOK, importResponse{
		Status:       "success",
		NumbersCount: result.Count,
		ImportID:     result.ID,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	result, err := s.svc.Statistics()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Stats:             result.Categories,
		DigitDistribution: result.Distribution.Chart(),
	})
}

func (s *Server) handlePredict(w http.ResponseWriter, _ *http.Request) {
	predictions, err := s.svc.Predictions()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{Predictions: predictions})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "ok",
		NumbersCount: s.svc.Count(),
		ImportID:     s.svc.LastImportID(),
	})
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrEmptySeries) {
		writeJSON(w, http.StatusOK, errorResponse{Error: noDataMessage})
		return
	}
	logger.Error("Request failed: %v", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to write response: %v", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("%s %s %d (%v)", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
