package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-api/internal/domain/schedules"
)

var scheduleColumns = []string{
	"id", "pet_id", "food_type", "amount", "time", "frequency", "notes", "created_at",
}

func TestScheduleRepo_ListByPets(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT(.|\s)+FROM feeding_schedules(.|\s)+WHERE pet_id IN \(\$1,\$2\)(.|\s)+ORDER BY time`).
		WithArgs("pet-1", "pet-2").
		WillReturnRows(sqlmock.NewRows(scheduleColumns).
			AddRow("s1", "pet-1", "Dry food", "200g", "08:00", "daily", "", created).
			AddRow("s2", "pet-2", "Wet food", "100g", "18:00", "daily", "", created))

	repo := NewScheduleRepo(db)
	items, err := repo.ListByPets(context.Background(), []string{"pet-1", "pet-2"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "08:00", items[0].Time)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepo_ListByPets_Empty(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewScheduleRepo(db)
	items, err := repo.ListByPets(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestScheduleRepo_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM feeding_schedules WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewScheduleRepo(db)
	err = repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, schedules.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
