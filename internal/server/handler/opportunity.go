package handler

import (
	"log/slog"
	"net/http"

	"github.com/jrgordon/spreadscan/internal/domain"
	"github.com/jrgordon/spreadscan/internal/service"
)

// OpportunityHandler serves persisted arbitrage history.
type OpportunityHandler struct {
	svc    *service.ScanService
	logger *slog.Logger
}

// NewOpportunityHandler creates an OpportunityHandler backed by the given
// service.
func NewOpportunityHandler(svc *service.ScanService, logger *slog.Logger) *OpportunityHandler {
	return &OpportunityHandler{
		svc:    svc,
		logger: logger.With(slog.String("handler", "opportunity")),
	}
}

// ListRecent returns the most recently detected opportunities.
// GET /api/opportunities/recent?limit=50
func (h *OpportunityHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, 50, 500)

	opps, err := h.svc.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list opportunities failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to load opportunities")
		return
	}
	if opps == nil {
		opps = []domain.Opportunity{}
	}

	total, err := h.svc.CountOpportunities(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "count opportunities failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to load opportunities")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"opportunities": opps,
		"count":         len(opps),
		"total":         total,
	})
}
