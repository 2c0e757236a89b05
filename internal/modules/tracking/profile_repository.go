package tracking

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lifeboard/internal/domain"
)

// ProfileRepository handles the single-row user profile
type ProfileRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB, log zerolog.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:  db,
		log: log.With().Str("repo", "profile").Logger(),
	}
}

// Get retrieves the user profile, nil when none has been saved yet
func (r *ProfileRepository) Get() (*Profile, error) {
	query := `
		SELECT height_cm, birth_date, sex, activity_level,
		       training_days_per_week, tdee_override, goal_weight_kg
		FROM user_profile WHERE id = 1
	`

	var p Profile
	var birthDate string
	var sex, activityLevel string
	var tdeeOverride sql.NullInt64
	var goalWeight sql.NullFloat64

	err := r.db.QueryRow(query).Scan(
		&p.HeightCm,
		&birthDate,
		&sex,
		&activityLevel,
		&p.TrainingDaysPerWeek,
		&tdeeOverride,
		&goalWeight,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	p.BirthDate, err = parseDate(birthDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse birth date: %w", err)
	}
	p.Sex = domain.Sex(sex)
	p.ActivityLevel = domain.ActivityLevel(activityLevel)
	if tdeeOverride.Valid {
		v := int(tdeeOverride.Int64)
		p.TDEEOverride = &v
	}
	if goalWeight.Valid {
		p.GoalWeightKg = &goalWeight.Float64
	}

	return &p, nil
}

// Save stores the profile, replacing any previous one
func (r *ProfileRepository) Save(p Profile) error {
	query := `
		INSERT INTO user_profile
		(id, height_cm, birth_date, sex, activity_level,
		 training_days_per_week, tdee_override, goal_weight_kg)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			height_cm = excluded.height_cm,
			birth_date = excluded.birth_date,
			sex = excluded.sex,
			activity_level = excluded.activity_level,
			training_days_per_week = excluded.training_days_per_week,
			tdee_override = excluded.tdee_override,
			goal_weight_kg = excluded.goal_weight_kg
	`

	_, err := r.db.Exec(query,
		p.HeightCm,
		formatDate(p.BirthDate),
		string(p.Sex),
		string(p.ActivityLevel),
		p.TrainingDaysPerWeek,
		nullIntPtr(p.TDEEOverride),
		nullFloat64Ptr(p.GoalWeightKg),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	r.log.Info().
		Float64("height_cm", p.HeightCm).
		Str("activity_level", string(p.ActivityLevel)).
		Msg("Profile saved")

	return nil
}

func nullIntPtr(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullFloat64Ptr(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
