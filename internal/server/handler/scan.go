package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jrgordon/spreadscan/internal/domain"
	"github.com/jrgordon/spreadscan/internal/service"
)

// ScanHandler serves the latest scan result and manual scan triggers.
type ScanHandler struct {
	svc    *service.ScanService
	logger *slog.Logger
}

// NewScanHandler creates a ScanHandler backed by the given service.
func NewScanHandler(svc *service.ScanService, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{
		svc:    svc,
		logger: logger.With(slog.String("handler", "scan")),
	}
}

// Latest returns the most recent cached scan result.
// GET /api/scan/latest
func (h *ScanHandler) Latest(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Latest(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoScan) {
			writeError(w, http.StatusNotFound, "no scan available yet")
			return
		}
		h.logger.ErrorContext(r.Context(), "latest scan lookup failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to load latest scan")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Trigger runs one scan cycle synchronously and returns its result.
// POST /api/scan/trigger
func (h *ScanHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.RunOnce(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "triggered scan failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadGateway, "scan failed: venue fetch error")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
