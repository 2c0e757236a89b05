package streaks

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifeboard/internal/domain"
	"github.com/lifeboard/internal/events"
)

// Handler handles streak HTTP requests
type Handler struct {
	repo     *Repository
	events   *events.Manager
	lookback int
	now      func() time.Time
	log      zerolog.Logger
}

// NewHandler creates a new streaks handler
func NewHandler(repo *Repository, eventManager *events.Manager, lookbackDays int, log zerolog.Logger) *Handler {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	return &Handler{
		repo:     repo,
		events:   eventManager,
		lookback: lookbackDays,
		now:      time.Now,
		log:      log.With().Str("handler", "streaks").Logger(),
	}
}

// HandleGetStreak handles GET /streak - current streak with the recent window
func (h *Handler) HandleGetStreak(w http.ResponseWriter, r *http.Request) {
	today := domain.Day(h.now())

	dates, err := h.repo.LoggedDates(today.AddDate(0, 0, -h.lookback))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get habit logs")
		http.Error(w, "Failed to retrieve streak", http.StatusInternalServerError)
		return
	}

	result := CalculateStreak(dates, today, h.lookback)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

type habitRequest struct {
	Date string `json:"date,omitempty"`
}

// HandleLogHabit handles POST /streak/log - record today (or a given day)
func (h *Handler) HandleLogHabit(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	date := domain.Day(h.now())
	if req.Date != "" {
		parsed, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
		if err != nil {
			http.Error(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	if err := h.repo.Log(date); err != nil {
		h.log.Error().Err(err).Msg("Failed to log habit")
		http.Error(w, "Failed to log habit", http.StatusInternalServerError)
		return
	}

	h.events.Emit(events.HabitLogged, "streaks", map[string]interface{}{
		"date": date.Format(dateLayout),
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"date": date.Format(dateLayout)})
}
