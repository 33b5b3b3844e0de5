package http

import (
	"log/slog"
	"net/http"

	"mortgage-planner/domain"
	"mortgage-planner/logging"
	"mortgage-planner/service"
)

type TermComparisonHandler struct {
	service *service.TermComparisonService
	logger  *slog.Logger
}

func NewTermComparisonHandler(service *service.TermComparisonService, logger *slog.Logger) *TermComparisonHandler {
	return &TermComparisonHandler{
		service: service,
		logger:  logging.WithComponent(logger, logging.ComponentHTTP),
	}
}

func (h *TermComparisonHandler) CompareTerms(w http.ResponseWriter, r *http.Request) {
	var input domain.TermComparisonInput
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	result, err := h.service.CompareTerms(r.Context(), input)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Error comparing terms", logging.FieldError, err)
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
