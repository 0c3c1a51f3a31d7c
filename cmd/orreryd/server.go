package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/orrerylab/orrery"
	"golang.org/x/time/rate"
)

// Server exposes the read-only snapshot and the mutating entry points over
// HTTP JSON.
type Server struct {
	sys        *orrery.System
	hub        *StreamHub
	metrics    *MetricsCollector
	limiter    *IPRateLimiter
	httpServer *http.Server
}

func NewServer(sys *orrery.System, hub *StreamHub, metrics *MetricsCollector, addr string) *Server {
	s := &Server{
		sys:     sys,
		hub:     hub,
		metrics: metrics,
		limiter: NewIPRateLimiter(rate.Limit(50), 100),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/bodies", s.handleBodies)
	mux.HandleFunc("/api/bodies/", s.handleBodyOp)
	mux.HandleFunc("/api/clock", s.handleClock)
	mux.HandleFunc("/api/reset", s.handleReset)
	mux.HandleFunc("/ws", hub.HandleWS)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.throttle(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(r) {
			s.metrics.throttledTotal.Inc()
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeOpError(w http.ResponseWriter, op string, err error) {
	s.metrics.RecordOp(op, err)
	if err == nil {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	status := http.StatusBadRequest
	if errors.Is(err, orrery.ErrUnknownBody) {
		status = http.StatusNotFound
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// handleBodies serves GET /api/bodies: the full per-frame snapshot.
func (s *Server) handleBodies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	start := time.Now()
	snap := s.sys.Snapshot()
	s.metrics.ObserveSnapshot(time.Since(start))
	s.writeJSON(w, http.StatusOK, snap)
}

// handleBodyOp serves POST /api/bodies/{id}/{distance|reset|remove|restore}.
func (s *Server) handleBodyOp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/bodies/"), "/"), "/")
	if len(parts) != 2 {
		http.Error(w, "expected /api/bodies/{id}/{action}", http.StatusBadRequest)
		return
	}
	id, action := parts[0], parts[1]
	switch action {
	case "distance":
		var req struct {
			Distance float64 `json:"distance"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		s.writeOpError(w, "update-distance", s.sys.UpdateDistance(id, req.Distance))
	case "reset":
		s.writeOpError(w, "reset-distance", s.sys.ResetDistance(id))
	case "remove":
		s.writeOpError(w, "remove", s.sys.RemoveBody(id))
	case "restore":
		s.writeOpError(w, "restore", s.sys.RestoreBody(id))
	default:
		http.Error(w, "unknown action", http.StatusNotFound)
	}
}

// handleClock serves GET/POST /api/clock: pause, speed, zoom and date.
func (s *Server) handleClock(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		snap := s.sys.Snapshot()
		s.writeJSON(w, http.StatusOK, map[string]any{
			"date":        snap.Date,
			"elapsedDays": snap.ElapsedDays,
			"paused":      snap.Paused,
			"speedFactor": snap.SpeedFactor,
			"zoom":        snap.Zoom,
		})
	case http.MethodPost:
		var req struct {
			Paused      *bool    `json:"paused"`
			SpeedFactor *float64 `json:"speedFactor"`
			Zoom        *float64 `json:"zoom"`
			Date        *string  `json:"date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		if req.Paused != nil {
			s.sys.SetPaused(*req.Paused)
			s.metrics.RecordOp("set-paused", nil)
		}
		if req.SpeedFactor != nil {
			s.sys.SetSpeedFactor(*req.SpeedFactor)
			s.metrics.RecordOp("set-speed", nil)
		}
		if req.Zoom != nil {
			s.sys.SetZoom(*req.Zoom)
			s.metrics.RecordOp("set-zoom", nil)
		}
		if req.Date != nil {
			date, err := time.Parse("2006-01-02", *req.Date)
			if err != nil {
				http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			s.sys.SetDate(date)
			s.metrics.RecordOp("set-date", nil)
		}
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleReset serves POST /api/reset: the bulk reset.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.sys.ResetAllChanges()
	s.metrics.RecordOp("reset-all", nil)
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
