package trend

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/lifeboard/internal/modules/tracking"
)

// Handler handles trend HTTP requests
type Handler struct {
	weights *tracking.WeightRepository
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new trend handler
func NewHandler(weights *tracking.WeightRepository, service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		weights: weights,
		service: service,
		log:     log.With().Str("handler", "trend").Logger(),
	}
}

// HandleGetTrend handles GET /trend - null until two weights are logged
func (h *Handler) HandleGetTrend(w http.ResponseWriter, r *http.Request) {
	entries, err := h.weights.GetAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load weight entries")
		http.Error(w, "Failed to build trend", http.StatusInternalServerError)
		return
	}

	result := h.service.BuildTrend(entries)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
