package tracking

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/lifeboard/internal/domain"
	"github.com/lifeboard/internal/events"
	"github.com/lifeboard/internal/modules/metabolism"
)

// Handler handles tracking HTTP requests
type Handler struct {
	weights  *WeightRepository
	calories *CalorieRepository
	profile  *ProfileRepository
	events   *events.Manager
	log      zerolog.Logger
}

// NewHandler creates a new tracking handler
func NewHandler(
	weights *WeightRepository,
	calories *CalorieRepository,
	profile *ProfileRepository,
	eventManager *events.Manager,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		weights:  weights,
		calories: calories,
		profile:  profile,
		events:   eventManager,
		log:      log.With().Str("handler", "tracking").Logger(),
	}
}

type weightRequest struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weight_kg"`
}

type calorieRequest struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
}

// HandleListWeights handles GET /weights - all entries, oldest first
func (h *Handler) HandleListWeights(w http.ResponseWriter, r *http.Request) {
	entries, err := h.weights.GetAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list weight entries")
		http.Error(w, "Failed to retrieve weight entries", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []domain.WeightEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// HandleCreateWeight handles POST /weights - log or replace a day's weight
func (h *Handler) HandleCreateWeight(w http.ResponseWriter, r *http.Request) {
	var req weightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		http.Error(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if req.WeightKg <= 0 {
		http.Error(w, "weight_kg must be positive", http.StatusBadRequest)
		return
	}

	entry, err := h.weights.Upsert(domain.WeightEntry{Date: date, WeightKg: req.WeightKg})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to save weight entry")
		http.Error(w, "Failed to save weight entry", http.StatusInternalServerError)
		return
	}

	h.events.Emit(events.WeightLogged, "tracking", map[string]interface{}{
		"date":      req.Date,
		"weight_kg": req.WeightKg,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// HandleDeleteWeight handles DELETE /weights/{id}
func (h *Handler) HandleDeleteWeight(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.weights.Delete(id)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "Weight entry not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to delete weight entry")
		http.Error(w, "Failed to delete weight entry", http.StatusInternalServerError)
		return
	}

	h.events.Emit(events.WeightDeleted, "tracking", map[string]interface{}{"id": id})
	w.WriteHeader(http.StatusNoContent)
}

// HandleListCalories handles GET /calories - all logs, oldest first
func (h *Handler) HandleListCalories(w http.ResponseWriter, r *http.Request) {
	logs, err := h.calories.GetAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list calorie logs")
		http.Error(w, "Failed to retrieve calorie logs", http.StatusInternalServerError)
		return
	}
	if logs == nil {
		logs = []domain.CalorieLog{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}

// HandleCreateCalorie handles POST /calories - log or replace a day's intake
func (h *Handler) HandleCreateCalorie(w http.ResponseWriter, r *http.Request) {
	var req calorieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		http.Error(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if req.Calories < 0 {
		http.Error(w, "calories must not be negative", http.StatusBadRequest)
		return
	}

	log, err := h.calories.Upsert(domain.CalorieLog{Date: date, Calories: req.Calories})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to save calorie log")
		http.Error(w, "Failed to save calorie log", http.StatusInternalServerError)
		return
	}

	h.events.Emit(events.CalorieLogged, "tracking", map[string]interface{}{
		"date":     req.Date,
		"calories": req.Calories,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(log)
}

// HandleDeleteCalorie handles DELETE /calories/{id}
func (h *Handler) HandleDeleteCalorie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.calories.Delete(id)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "Calorie log not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to delete calorie log")
		http.Error(w, "Failed to delete calorie log", http.StatusInternalServerError)
		return
	}

	h.events.Emit(events.CalorieDeleted, "tracking", map[string]interface{}{"id": id})
	w.WriteHeader(http.StatusNoContent)
}

type profileRequest struct {
	HeightCm            float64  `json:"height_cm"`
	BirthDate           string   `json:"birth_date"`
	Sex                 string   `json:"sex"`
	ActivityLevel       string   `json:"activity_level"`
	TrainingDaysPerWeek int      `json:"training_days_per_week"`
	TDEEOverride        *int     `json:"tdee_override,omitempty"`
	GoalWeightKg        *float64 `json:"goal_weight_kg,omitempty"`
}

// HandleGetProfile handles GET /profile - null when never saved
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profile.Get()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get profile")
		http.Error(w, "Failed to retrieve profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// HandlePutProfile handles PUT /profile - full replace of the single profile
func (h *Handler) HandlePutProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		http.Error(w, "Invalid birth_date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	sex := domain.Sex(req.Sex)
	if sex != domain.SexMale && sex != domain.SexFemale {
		http.Error(w, "sex must be male or female", http.StatusBadRequest)
		return
	}
	if !metabolism.ValidActivityLevel(domain.ActivityLevel(req.ActivityLevel)) {
		http.Error(w, "Invalid activity_level", http.StatusBadRequest)
		return
	}
	if req.HeightCm <= 0 {
		http.Error(w, "height_cm must be positive", http.StatusBadRequest)
		return
	}
	if req.TrainingDaysPerWeek < 0 || req.TrainingDaysPerWeek > 7 {
		http.Error(w, "training_days_per_week must be 0-7", http.StatusBadRequest)
		return
	}

	profile := Profile{
		UserProfile: domain.UserProfile{
			HeightCm:            req.HeightCm,
			BirthDate:           birthDate,
			Sex:                 sex,
			ActivityLevel:       domain.ActivityLevel(req.ActivityLevel),
			TrainingDaysPerWeek: req.TrainingDaysPerWeek,
			TDEEOverride:        req.TDEEOverride,
		},
		GoalWeightKg: req.GoalWeightKg,
	}

	if err := h.profile.Save(profile); err != nil {
		h.log.Error().Err(err).Msg("Failed to save profile")
		http.Error(w, "Failed to save profile", http.StatusInternalServerError)
		return
	}

	h.events.Emit(events.ProfileUpdated, "tracking", map[string]interface{}{
		"activity_level": req.ActivityLevel,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}
