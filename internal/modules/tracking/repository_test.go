package tracking

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeboard/internal/database"
	"github.com/lifeboard/internal/domain"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.NewInMemory()
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	t.Cleanup(func() { db.Close() })
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeightRepository_UpsertAndGetAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWeightRepository(db.Conn(), zerolog.Nop())

	_, err := repo.Upsert(domain.WeightEntry{Date: day(2024, 3, 2), WeightKg: 90.5})
	require.NoError(t, err)
	_, err = repo.Upsert(domain.WeightEntry{Date: day(2024, 3, 1), WeightKg: 91.0})
	require.NoError(t, err)

	entries, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Ordered by date ascending regardless of insert order
	assert.Equal(t, day(2024, 3, 1), entries[0].Date)
	assert.Equal(t, 91.0, entries[0].WeightKg)
	assert.Equal(t, day(2024, 3, 2), entries[1].Date)
	assert.NotEmpty(t, entries[0].ID)
}

func TestWeightRepository_UpsertReplacesSameDay(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWeightRepository(db.Conn(), zerolog.Nop())

	first, err := repo.Upsert(domain.WeightEntry{Date: day(2024, 3, 1), WeightKg: 91.0})
	require.NoError(t, err)

	second, err := repo.Upsert(domain.WeightEntry{Date: day(2024, 3, 1), WeightKg: 90.2})
	require.NoError(t, err)

	// Same day keeps the original row id, one entry total
	assert.Equal(t, first.ID, second.ID)

	entries, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 90.2, entries[0].WeightKg)
}

func TestWeightRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWeightRepository(db.Conn(), zerolog.Nop())

	entry, err := repo.Upsert(domain.WeightEntry{Date: day(2024, 3, 1), WeightKg: 91.0})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(entry.ID))

	entries, err := repo.GetAll()
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.ErrorIs(t, repo.Delete("missing"), sql.ErrNoRows)
}

func TestCalorieRepository_GetSince(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCalorieRepository(db.Conn(), zerolog.Nop())

	for i, cal := range []int{1800, 1900, 2000, 2100} {
		_, err := repo.Upsert(domain.CalorieLog{Date: day(2024, 3, 1+i), Calories: cal})
		require.NoError(t, err)
	}

	logs, err := repo.GetSince("2024-03-03")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, 2000, logs[0].Calories)
	assert.Equal(t, 2100, logs[1].Calories)
}

func TestCalorieRepository_UpsertReplacesSameDay(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCalorieRepository(db.Conn(), zerolog.Nop())

	_, err := repo.Upsert(domain.CalorieLog{Date: day(2024, 3, 1), Calories: 1800})
	require.NoError(t, err)
	_, err = repo.Upsert(domain.CalorieLog{Date: day(2024, 3, 1), Calories: 2200})
	require.NoError(t, err)

	logs, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 2200, logs[0].Calories)
}

func TestProfileRepository_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db.Conn(), zerolog.Nop())

	// Absent until saved
	profile, err := repo.Get()
	require.NoError(t, err)
	assert.Nil(t, profile)

	override := 2600
	goal := 80.0
	saved := Profile{
		UserProfile: domain.UserProfile{
			HeightCm:            178,
			BirthDate:           day(1990, 6, 15),
			Sex:                 domain.SexMale,
			ActivityLevel:       domain.ActivityModerate,
			TrainingDaysPerWeek: 4,
			TDEEOverride:        &override,
		},
		GoalWeightKg: &goal,
	}
	require.NoError(t, repo.Save(saved))

	profile, err = repo.Get()
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, saved, *profile)
}

func TestProfileRepository_SaveReplacesSingleRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db.Conn(), zerolog.Nop())

	base := Profile{
		UserProfile: domain.UserProfile{
			HeightCm:      165,
			BirthDate:     day(1995, 1, 1),
			Sex:           domain.SexFemale,
			ActivityLevel: domain.ActivitySedentary,
		},
	}
	require.NoError(t, repo.Save(base))

	base.ActivityLevel = domain.ActivityActive
	base.TrainingDaysPerWeek = 5
	require.NoError(t, repo.Save(base))

	profile, err := repo.Get()
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, domain.ActivityActive, profile.ActivityLevel)
	assert.Equal(t, 5, profile.TrainingDaysPerWeek)
	assert.Nil(t, profile.TDEEOverride)
	assert.Nil(t, profile.GoalWeightKg)
}
