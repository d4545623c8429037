package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/refman/internal/logfields"
	"git.home.luguber.info/inful/refman/internal/site"
)

// HealthResponse is the health check API response.
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Uptime    string         `json:"uptime"`
	Project   string         `json:"project"`
	Version   string         `json:"version"`
	LastBuild *LastBuildInfo `json:"last_build,omitempty"`
}

// LastBuildInfo summarizes the most recent build for API responses.
type LastBuildInfo struct {
	ID            string    `json:"id"`
	Outcome       string    `json:"outcome"`
	Finished      time.Time `json:"finished"`
	RenderedPages int       `json:"rendered_pages"`
	Duration      string    `json:"duration"`
}

// TriggerResponse is the build trigger API response.
type TriggerResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := &HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Uptime:    time.Since(s.start).Truncate(time.Second).String(),
		Project:   s.cfg.Site.Project,
		Version:   s.cfg.Version,
	}

	status := http.StatusOK
	if last := s.lastReport(); last != nil {
		resp.LastBuild = &LastBuildInfo{
			ID:            last.ID,
			Outcome:       string(last.Outcome),
			Finished:      last.End,
			RenderedPages: last.RenderedPages,
			Duration:      last.Duration().Truncate(time.Millisecond).String(),
		}
		switch last.Outcome {
		case site.OutcomeWarning:
			resp.Status = "degraded"
		case site.OutcomeFailed, site.OutcomeCanceled:
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
		}
	}

	_ = writeJSON(w, status, resp)
}

func (s *Server) handleBuildStatus(w http.ResponseWriter, r *http.Request) {
	last := s.lastReport()
	if last == nil {
		http.Error(w, "no build recorded yet", http.StatusNotFound)
		return
	}
	_ = writeJSON(w, http.StatusOK, last)
}

func (s *Server) handleBuildTrigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.building.Load() {
		_ = writeJSON(w, http.StatusConflict, &TriggerResponse{
			Status:    "already_running",
			Timestamp: time.Now(),
		})
		return
	}
	go s.runBuild("api")
	_ = writeJSON(w, http.StatusAccepted, &TriggerResponse{
		Status:    "accepted",
		Timestamp: time.Now(),
	})
}

// writeJSON encodes v into an intermediate buffer so a failed encode never
// sends a partial response.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, "encoding failure", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("Failed writing JSON response body", logfields.Error(err))
		return err
	}
	return nil
}
