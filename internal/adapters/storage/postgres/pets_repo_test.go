package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-api/internal/domain/pets"
)

var petColumns = []string{
	"id", "user_id",
	"name", "species", "breed",
	"age", "weight", "photo_url", "tags", "notes",
	"created_at",
}

func TestPetRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT(.|\s)+FROM pets(.|\s)+WHERE id = \$1`).
		WithArgs("pet-1").
		WillReturnRows(sqlmock.NewRows(petColumns).
			AddRow("pet-1", "user-1", "Rex", "Dog", "Mixed", int64(5), 20.5, "", "a,b", "", created))

	repo := NewPetRepo(db)
	p, err := repo.GetByID(context.Background(), "pet-1")
	require.NoError(t, err)

	assert.Equal(t, "Rex", p.Name)
	require.NotNil(t, p.Age)
	assert.Equal(t, 5, *p.Age)
	require.NotNil(t, p.Weight)
	assert.Equal(t, 20.5, *p.Weight)
	assert.Equal(t, []string{"a", "b"}, p.Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetRepo_GetByID_NullableFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT(.|\s)+FROM pets(.|\s)+WHERE id = \$1`).
		WithArgs("pet-1").
		WillReturnRows(sqlmock.NewRows(petColumns).
			AddRow("pet-1", "user-1", "Rex", "Dog", "", nil, nil, "", "", "", created))

	repo := NewPetRepo(db)
	p, err := repo.GetByID(context.Background(), "pet-1")
	require.NoError(t, err)

	assert.Nil(t, p.Age)
	assert.Nil(t, p.Weight)
	assert.Equal(t, []string{}, p.Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT(.|\s)+FROM pets(.|\s)+WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(petColumns))

	repo := NewPetRepo(db)
	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, pets.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetRepo_Create_EncodesTags(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	age := 3
	mock.ExpectExec(`INSERT INTO pets`).
		WithArgs(
			"pet-1", "user-1", "Rex", "Dog", "Mixed",
			sqlmock.AnyArg(), sqlmock.AnyArg(), "", `a\,b,c`, "",
			created,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPetRepo(db)
	err = repo.Create(context.Background(), pets.Pet{
		ID:        "pet-1",
		UserID:    "user-1",
		Name:      "Rex",
		Species:   "Dog",
		Breed:     "Mixed",
		Age:       &age,
		Tags:      []string{"a,b", "c"},
		CreatedAt: created,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetRepo_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE pets`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPetRepo(db)
	err = repo.Update(context.Background(), pets.Pet{ID: "missing"})
	assert.ErrorIs(t, err, pets.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM pets WHERE id = \$1`).
		WithArgs("pet-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPetRepo(db)
	require.NoError(t, repo.Delete(context.Background(), "pet-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
