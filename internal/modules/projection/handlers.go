package projection

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifeboard/internal/domain"
	"github.com/lifeboard/internal/modules/metabolism"
	"github.com/lifeboard/internal/modules/tracking"
	"github.com/lifeboard/internal/modules/trajectory"
)

// Handler handles projection and goal analytics HTTP requests
type Handler struct {
	weights          *tracking.WeightRepository
	calories         *tracking.CalorieRepository
	profile          *tracking.ProfileRepository
	service          *Service
	defaultAdherence float64
	now              func() time.Time
	log              zerolog.Logger
}

// NewHandler creates a new projection handler
func NewHandler(
	weights *tracking.WeightRepository,
	calories *tracking.CalorieRepository,
	profile *tracking.ProfileRepository,
	service *Service,
	defaultAdherence float64,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		weights:          weights,
		calories:         calories,
		profile:          profile,
		service:          service,
		defaultAdherence: defaultAdherence,
		now:              time.Now,
		log:              log.With().Str("handler", "projection").Logger(),
	}
}

// snapshot is the stored state every analytics endpoint starts from
type snapshot struct {
	entries []domain.WeightEntry
	logs    []domain.CalorieLog
	profile *tracking.Profile
	today   time.Time
}

func (h *Handler) loadSnapshot() (*snapshot, error) {
	entries, err := h.weights.GetAll()
	if err != nil {
		return nil, err
	}
	logs, err := h.calories.GetAll()
	if err != nil {
		return nil, err
	}
	profile, err := h.profile.Get()
	if err != nil {
		return nil, err
	}
	return &snapshot{
		entries: entries,
		logs:    logs,
		profile: profile,
		today:   domain.Day(h.now()),
	}, nil
}

func (s *snapshot) userProfile() *domain.UserProfile {
	if s.profile == nil {
		return nil
	}
	return &s.profile.UserProfile
}

func (s *snapshot) goalWeight() *float64 {
	if s.profile == nil {
		return nil
	}
	return s.profile.GoalWeightKg
}

// currentWeight is the latest logged weight, false when nothing is logged
func (s *snapshot) currentWeight() (float64, bool) {
	entries := domain.SortedWeightEntries(s.entries)
	if len(entries) == 0 {
		return 0, false
	}
	return entries[len(entries)-1].WeightKg, true
}

// dailyDeficit derives the observed deficit from current TDEE and trailing
// average intake. False when intake data is missing.
func (s *snapshot) dailyDeficit() (float64, bool) {
	weight, ok := s.currentWeight()
	if !ok {
		return 0, false
	}
	intake, ok := trailingIntakeMean(s.logs, s.today)
	if !ok {
		return 0, false
	}
	tdee := metabolism.TDEEForProfile(weight, s.userProfile(), s.today)
	return float64(tdee) - intake, true
}

// HandleGetProjection handles GET /projection
//
// Query parameters: timeframe (4w|8w|12w|6m|1y), adherence (0-1),
// adaptive (bool), bands (bool), target_deficit (kcal). Insufficient data
// yields a null body, not an error.
func (h *Handler) HandleGetProjection(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	timeframe := Timeframe(q.Get("timeframe"))
	if timeframe == "" {
		timeframe = Timeframe12Weeks
	}
	if _, ok := ProjectionDays(timeframe); !ok {
		http.Error(w, "Invalid timeframe. Use 4w, 8w, 12w, 6m or 1y", http.StatusBadRequest)
		return
	}

	adherence := h.defaultAdherence
	if v := q.Get("adherence"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			http.Error(w, "Invalid adherence. Must be 0-1", http.StatusBadRequest)
			return
		}
		adherence = parsed
	}

	var targetDeficit *float64
	if v := q.Get("target_deficit"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			http.Error(w, "Invalid target_deficit", http.StatusBadRequest)
			return
		}
		targetDeficit = &parsed
	}

	snap, err := h.loadSnapshot()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load projection inputs")
		http.Error(w, "Failed to build projection", http.StatusInternalServerError)
		return
	}

	result := h.service.BuildProjection(Request{
		Entries:       snap.entries,
		Logs:          snap.logs,
		Profile:       snap.userProfile(),
		GoalWeightKg:  snap.goalWeight(),
		Timeframe:     timeframe,
		Adherence:     adherence,
		Adaptive:      q.Get("adaptive") == "true",
		ShowBands:     q.Get("bands") == "true",
		TargetDeficit: targetDeficit,
		Today:         snap.today,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleGetGoalETA handles GET /goal/eta - null when unanswerable
func (h *Handler) HandleGetGoalETA(w http.ResponseWriter, r *http.Request) {
	snap, err := h.loadSnapshot()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load goal inputs")
		http.Error(w, "Failed to estimate time to goal", http.StatusInternalServerError)
		return
	}

	var eta *trajectory.GoalETA
	weight, hasWeight := snap.currentWeight()
	deficit, hasDeficit := snap.dailyDeficit()
	if hasWeight && hasDeficit {
		eta = trajectory.EstimateTimeToGoal(weight, snap.goalWeight(), deficit, snap.today)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(eta)
}

// HandleGetTargetTrajectory handles GET /goal/trajectory
func (h *Handler) HandleGetTargetTrajectory(w http.ResponseWriter, r *http.Request) {
	timeframe := Timeframe(r.URL.Query().Get("timeframe"))
	if timeframe == "" {
		timeframe = Timeframe12Weeks
	}
	days, ok := ProjectionDays(timeframe)
	if !ok {
		http.Error(w, "Invalid timeframe. Use 4w, 8w, 12w, 6m or 1y", http.StatusBadRequest)
		return
	}

	snap, err := h.loadSnapshot()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load trajectory inputs")
		http.Error(w, "Failed to build target trajectory", http.StatusInternalServerError)
		return
	}

	var points []trajectory.TargetPoint
	if deficit, hasDeficit := snap.dailyDeficit(); hasDeficit {
		points = trajectory.TargetTrajectory(snap.entries, snap.goalWeight(), deficit, days, snap.today)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(points)
}

// HandleGetProgress handles GET /goal/progress - ahead/on_track/behind
func (h *Handler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	snap, err := h.loadSnapshot()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load progress inputs")
		http.Error(w, "Failed to calculate progress", http.StatusInternalServerError)
		return
	}

	weight, _ := snap.currentWeight()
	deficit, _ := snap.dailyDeficit()
	report := trajectory.CalculateTargetWeightToday(snap.entries, snap.goalWeight(), weight, deficit, snap.today)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}
