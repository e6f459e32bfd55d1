package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-api/internal/domain/visits"
)

var visitColumns = []string{
	"id", "pet_id", "visit_date",
	"vet_name", "clinic_name", "reason",
	"diagnosis", "treatment", "medications", "notes",
	"created_at",
}

func TestVisitRepo_ListByPet_OrdersByDateDesc(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	day := func(d int) time.Time { return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC) }
	created := day(1)

	// el ORDER BY visit_date DESC es parte del contrato del repo
	mock.ExpectQuery(`SELECT(.|\s)+FROM vet_visits(.|\s)+WHERE pet_id = \$1(.|\s)+ORDER BY visit_date DESC`).
		WithArgs("pet-1").
		WillReturnRows(sqlmock.NewRows(visitColumns).
			AddRow("v2", "pet-1", day(20), "", "", "Vaccine", "", "", "", "", created).
			AddRow("v1", "pet-1", day(10), "", "", "Checkup", "", "", "", "", created))

	repo := NewVisitRepo(db)
	items, err := repo.ListByPet(context.Background(), "pet-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "v2", items[0].ID)
	assert.Equal(t, "v1", items[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVisitRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT(.|\s)+FROM vet_visits(.|\s)+WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(visitColumns))

	repo := NewVisitRepo(db)
	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, visits.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVisitRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	visitDate := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO vet_visits`).
		WithArgs(
			"v1", "pet-1", visitDate,
			"Dr. Soto", "", "Checkup",
			"", "", "", "",
			created,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewVisitRepo(db)
	err = repo.Create(context.Background(), visits.VetVisit{
		ID:        "v1",
		PetID:     "pet-1",
		VisitDate: visitDate,
		VetName:   "Dr. Soto",
		Reason:    "Checkup",
		CreatedAt: created,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVisitRepo_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE vet_visits`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewVisitRepo(db)
	err = repo.Update(context.Background(), visits.VetVisit{ID: "missing"})
	assert.ErrorIs(t, err, visits.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
