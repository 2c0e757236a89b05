package tracking

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lifeboard/internal/domain"
)

// WeightRepository handles weight entry database operations
type WeightRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewWeightRepository creates a new weight repository
func NewWeightRepository(db *sql.DB, log zerolog.Logger) *WeightRepository {
	return &WeightRepository{
		db:  db,
		log: log.With().Str("repo", "weight").Logger(),
	}
}

// GetAll retrieves all weight entries ordered by date ascending
func (r *WeightRepository) GetAll() ([]domain.WeightEntry, error) {
	query := `
		SELECT id, date, weight_kg FROM weight_entries
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get weight entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.WeightEntry
	for rows.Next() {
		var entry domain.WeightEntry
		var date string
		if err := rows.Scan(&entry.ID, &date, &entry.WeightKg); err != nil {
			return nil, fmt.Errorf("failed to scan weight entry: %w", err)
		}
		entry.Date, err = parseDate(date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse weight entry date: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weight entries: %w", err)
	}

	return entries, nil
}

// GetByDate retrieves the weight entry for a specific day, nil if none
func (r *WeightRepository) GetByDate(date string) (*domain.WeightEntry, error) {
	query := "SELECT id, date, weight_kg FROM weight_entries WHERE date = ?"

	var entry domain.WeightEntry
	var stored string
	err := r.db.QueryRow(query, date).Scan(&entry.ID, &stored, &entry.WeightKg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get weight entry by date: %w", err)
	}

	entry.Date, err = parseDate(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to parse weight entry date: %w", err)
	}

	return &entry, nil
}

// Upsert inserts a weight entry, replacing the value for an already-logged
// day. One entry per calendar day.
func (r *WeightRepository) Upsert(entry domain.WeightEntry) (domain.WeightEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	date := formatDate(entry.Date)

	query := `
		INSERT INTO weight_entries (id, date, weight_kg)
		VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET weight_kg = excluded.weight_kg
	`

	if _, err := r.db.Exec(query, entry.ID, date, entry.WeightKg); err != nil {
		return entry, fmt.Errorf("failed to upsert weight entry: %w", err)
	}

	// The conflict path keeps the existing row id, so read it back
	saved, err := r.GetByDate(date)
	if err != nil {
		return entry, err
	}
	if saved != nil {
		entry = *saved
	}

	r.log.Info().
		Str("date", date).
		Float64("weight_kg", entry.WeightKg).
		Msg("Weight entry saved")

	return entry, nil
}

// Delete removes a weight entry by id
func (r *WeightRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM weight_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete weight entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	r.log.Info().Str("id", id).Msg("Weight entry deleted")
	return nil
}
