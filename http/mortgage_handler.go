package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"mortgage-planner/domain"
	"mortgage-planner/logging"
	"mortgage-planner/service"
)

type MortgageHandler struct {
	service *service.MortgageService
	logger  *slog.Logger
}

func NewMortgageHandler(service *service.MortgageService, logger *slog.Logger) *MortgageHandler {
	return &MortgageHandler{
		service: service,
		logger:  logging.WithComponent(logger, logging.ComponentHTTP),
	}
}

func (h *MortgageHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var input domain.MortgageInput
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	report, err := h.service.Calculate(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, report)
}

func (h *MortgageHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := h.service.History(r.Context(), limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, records)
}
