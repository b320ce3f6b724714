package handler

import (
	"net/http"
	"time"

	"github.com/jrgordon/spreadscan/internal/service"
)

// HealthHandler serves the health-check endpoint with scanner state attached.
type HealthHandler struct {
	svc     *service.ScanService
	started time.Time
}

// NewHealthHandler creates a HealthHandler. The start time feeds the uptime
// field of the response.
func NewHealthHandler(svc *service.ScanService, started time.Time) *HealthHandler {
	return &HealthHandler{svc: svc, started: started}
}

// HealthCheck reports liveness plus the scanner's current state: uptime and,
// once a scan has completed, the last scan's id and timestamp.
// GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":         "ok",
		"service":        "spreadscan",
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	}

	// Cache trouble, like no scan yet, degrades the payload rather than the
	// status: the endpoint answers "is the process up", not "is redis up".
	if res, err := h.svc.Latest(r.Context()); err == nil {
		body["last_scan_id"] = res.ID
		body["last_scan_at"] = res.ScannedAt.UTC().Format(time.RFC3339)
	} else {
		body["last_scan_id"] = nil
	}

	writeJSON(w, http.StatusOK, body)
}
