package tracking

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lifeboard/internal/domain"
)

// CalorieRepository handles calorie log database operations
type CalorieRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewCalorieRepository creates a new calorie repository
func NewCalorieRepository(db *sql.DB, log zerolog.Logger) *CalorieRepository {
	return &CalorieRepository{
		db:  db,
		log: log.With().Str("repo", "calorie").Logger(),
	}
}

// GetAll retrieves all calorie logs ordered by date ascending
func (r *CalorieRepository) GetAll() ([]domain.CalorieLog, error) {
	query := `
		SELECT id, date, calories FROM calorie_logs
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get calorie logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.CalorieLog
	for rows.Next() {
		var log domain.CalorieLog
		var date string
		if err := rows.Scan(&log.ID, &date, &log.Calories); err != nil {
			return nil, fmt.Errorf("failed to scan calorie log: %w", err)
		}
		log.Date, err = parseDate(date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse calorie log date: %w", err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calorie logs: %w", err)
	}

	return logs, nil
}

// GetSince retrieves calorie logs on or after the given day, ascending
func (r *CalorieRepository) GetSince(date string) ([]domain.CalorieLog, error) {
	query := `
		SELECT id, date, calories FROM calorie_logs
		WHERE date >= ?
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get calorie logs since %s: %w", date, err)
	}
	defer rows.Close()

	var logs []domain.CalorieLog
	for rows.Next() {
		var log domain.CalorieLog
		var stored string
		if err := rows.Scan(&log.ID, &stored, &log.Calories); err != nil {
			return nil, fmt.Errorf("failed to scan calorie log: %w", err)
		}
		log.Date, err = parseDate(stored)
		if err != nil {
			return nil, fmt.Errorf("failed to parse calorie log date: %w", err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calorie logs: %w", err)
	}

	return logs, nil
}

// GetByDate retrieves the calorie log for a specific day, nil if none
func (r *CalorieRepository) GetByDate(date string) (*domain.CalorieLog, error) {
	query := "SELECT id, date, calories FROM calorie_logs WHERE date = ?"

	var log domain.CalorieLog
	var stored string
	err := r.db.QueryRow(query, date).Scan(&log.ID, &stored, &log.Calories)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get calorie log by date: %w", err)
	}

	log.Date, err = parseDate(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calorie log date: %w", err)
	}

	return &log, nil
}

// Upsert inserts a calorie log, replacing the value for an already-logged
// day. One log per calendar day.
func (r *CalorieRepository) Upsert(log domain.CalorieLog) (domain.CalorieLog, error) {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	date := formatDate(log.Date)

	query := `
		INSERT INTO calorie_logs (id, date, calories)
		VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET calories = excluded.calories
	`

	if _, err := r.db.Exec(query, log.ID, date, log.Calories); err != nil {
		return log, fmt.Errorf("failed to upsert calorie log: %w", err)
	}

	saved, err := r.GetByDate(date)
	if err != nil {
		return log, err
	}
	if saved != nil {
		log = *saved
	}

	r.log.Info().
		Str("date", date).
		Int("calories", log.Calories).
		Msg("Calorie log saved")

	return log, nil
}

// Delete removes a calorie log by id
func (r *CalorieRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM calorie_logs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete calorie log: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	r.log.Info().Str("id", id).Msg("Calorie log deleted")
	return nil
}
