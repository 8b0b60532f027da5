package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/quake-feed-analytics/internal/domain"
	"github.com/couchcryptid/quake-feed-analytics/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SnapshotSource provides the latest analysis snapshot and readiness state.
type SnapshotSource interface {
	Snapshot() (pipeline.Snapshot, bool)
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, metrics, and the analysis report over HTTP.
type Server struct {
	httpServer *http.Server
	source     SnapshotSource
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and the
// /api/v1 report routes.
func NewServer(addr string, source SnapshotSource, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		source: source,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/v1/report", s.handleReport)
	mux.HandleFunc("GET /api/v1/daily-counts", s.handleDailyCounts)
	mux.HandleFunc("GET /api/v1/classified", s.handleClassified)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.source.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// reportResponse wraps the domain report with ingestion housekeeping.
type reportResponse struct {
	domain.Report
	SkippedRows int       `json:"skipped_rows"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.source.Snapshot()
	if !ok {
		writeNoSnapshot(w)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{
		Report:      snap.Report,
		SkippedRows: len(snap.SkippedRows),
		RefreshedAt: snap.RefreshedAt,
	})
}

func (s *Server) handleDailyCounts(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.source.Snapshot()
	if !ok {
		writeNoSnapshot(w)
		return
	}
	writeJSON(w, http.StatusOK, snap.Report.DailyCounts)
}

// handleClassified serves the classified event set. Without a min_mag query
// parameter it returns the full batch classification; with one it derives
// the filtered sub-batch classification from the snapshot's immutable batch.
func (s *Server) handleClassified(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.source.Snapshot()
	if !ok {
		writeNoSnapshot(w)
		return
	}

	raw := r.URL.Query().Get("min_mag")
	if raw == "" {
		writeJSON(w, http.StatusOK, snap.Classified)
		return
	}

	threshold, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "min_mag must be a number",
		})
		return
	}
	classified := domain.Classify(domain.FilterByMagnitude(snap.Batch, threshold))
	writeJSON(w, http.StatusOK, classified)
}

func writeNoSnapshot(w http.ResponseWriter) {
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{
		"error": "no snapshot available yet",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
