package streaks

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lifeboard/internal/domain"
)

const dateLayout = "2006-01-02"

// Repository handles habit log database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new streaks repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "streaks").Logger(),
	}
}

// LoggedDates retrieves all habit log dates on or after the given day
func (r *Repository) LoggedDates(since time.Time) ([]time.Time, error) {
	query := `
		SELECT date FROM habit_logs
		WHERE date >= ?
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query, domain.Day(since).Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to get habit log dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var stored string
		if err := rows.Scan(&stored); err != nil {
			return nil, fmt.Errorf("failed to scan habit log date: %w", err)
		}
		date, err := time.ParseInLocation(dateLayout, stored, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("failed to parse habit log date: %w", err)
		}
		dates = append(dates, date)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating habit logs: %w", err)
	}

	return dates, nil
}

// Log records a habit completion for a day. Logging the same day twice is a
// no-op.
func (r *Repository) Log(date time.Time) error {
	query := `
		INSERT INTO habit_logs (id, date)
		VALUES (?, ?)
		ON CONFLICT(date) DO NOTHING
	`

	day := domain.Day(date).Format(dateLayout)
	if _, err := r.db.Exec(query, uuid.New().String(), day); err != nil {
		return fmt.Errorf("failed to log habit: %w", err)
	}

	r.log.Info().Str("date", day).Msg("Habit logged")
	return nil
}
