package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pulselab/trendpulse/internal/store"
	"github.com/pulselab/trendpulse/pkg/trend"
)

// Refresher triggers an immediate fetch cycle. Implemented by the
// scheduler.
type Refresher interface {
	RefreshNow(ctx context.Context) (int, error)
}

// Server provides the HTTP API.
type Server struct {
	store     store.Store
	scorer    *trend.Scorer
	rankCfg   trend.Config
	refresher Refresher
	port      int
	log       *logrus.Logger
}

// New creates a new HTTP server.
func New(s store.Store, scorer *trend.Scorer, rankCfg trend.Config, refresher Refresher, port int, log *logrus.Logger) *Server {
	if port == 0 {
		port = 8080
	}
	if log == nil {
		log = logrus.New()
	}
	return &Server{
		store:     s,
		scorer:    scorer,
		rankCfg:   rankCfg,
		refresher: refresher,
		port:      port,
		log:       log,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/trending", s.handleTrending)
	mux.HandleFunc("/api/v1/candidates", s.handleCandidates)
	mux.HandleFunc("/api/v1/refresh", s.handleRefresh)

	addr := fmt.Sprintf(":%d", s.port)
	s.log.WithField("addr", addr).Info("server listening")
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTrending ranks stored candidates on demand. Query params override
// the configured ranking defaults: limit, min_score, window_hours, and
// category (repeatable).
func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	cfg := s.rankCfg
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxResults = n
		}
	}
	if v := q.Get("min_score"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MinScore = f
		}
	}
	if v := q.Get("window_hours"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.TimeWindowHours = f
		}
	}
	if cats := q["category"]; len(cats) > 0 {
		cfg.Categories = nil
		for _, c := range cats {
			cfg.Categories = append(cfg.Categories, trend.Category(c))
		}
	}

	now := time.Now().UTC()
	window := cfg.TimeWindowHours
	if window <= 0 {
		window = trend.DefaultConfig().TimeWindowHours
	}
	since := now.Add(-time.Duration(window * float64(time.Hour)))

	all, err := s.store.ListCandidates(r.Context(), store.ListOpts{Since: since, Limit: 1000})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// Stored scores have stale recency; recompute against now.
	s.scorer.ScoreAll(all, now)

	var user, global []trend.Candidate
	for _, c := range all {
		if c.SourceKind == trend.KindSocial {
			user = append(user, c)
		} else {
			global = append(global, c)
		}
	}

	ranked := trend.Rank(user, global, cfg, now)

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  ranked,
		"count": len(ranked),
	})
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	opts := store.ListOpts{Limit: 100}
	if kind := r.URL.Query().Get("kind"); kind != "" {
		opts.Kind = trend.SourceKind(kind)
	}
	if since := r.URL.Query().Get("since"); since != "" {
		if t, err := time.Parse(time.RFC3339, since); err == nil {
			opts.Since = t
		}
	}

	candidates, err := s.store.ListCandidates(r.Context(), opts)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  candidates,
		"count": len(candidates),
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if s.refresher == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "refresh unavailable"})
		return
	}

	count, err := s.refresher.RefreshNow(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"collected": count})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
