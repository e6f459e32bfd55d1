package postgres

import (
	"context"
	"database/sql"

	"petcare-api/internal/domain/pets"
)

type PetRepo struct {
	db *sql.DB
}

func NewPetRepo(db *sql.DB) *PetRepo {
	return &PetRepo{db: db}
}

func (r *PetRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, user_id,
			name, species, breed,
			age, weight, photo_url, tags, notes,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		p.ID,
		p.UserID,
		p.Name,
		p.Species,
		p.Breed,
		toNullInt(p.Age),
		toNullFloat(p.Weight),
		p.PhotoURL,
		pets.EncodeTags(p.Tags),
		p.Notes,
		p.CreatedAt,
	)
	return err
}

func (r *PetRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			breed = $4,
			age = $5,
			weight = $6,
			photo_url = $7,
			tags = $8,
			notes = $9
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Breed,
		toNullInt(p.Age),
		toNullFloat(p.Weight),
		p.PhotoURL,
		pets.EncodeTags(p.Tags),
		p.Notes,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, user_id,
			name, species, breed,
			age, weight, photo_url, tags, notes,
			created_at
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetRepo) ListByOwner(ctx context.Context, userID string) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, user_id,
			name, species, breed,
			age, weight, photo_url, tags, notes,
			created_at
		FROM pets
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete borra la mascota; schedules y visits caen por el
// ON DELETE CASCADE del esquema.
func (r *PetRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var age sql.NullInt64
	var weight sql.NullFloat64
	var tags string

	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&age,
		&weight,
		&p.PhotoURL,
		&tags,
		&p.Notes,
		&p.CreatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	if weight.Valid {
		v := weight.Float64
		p.Weight = &v
	}
	p.Tags = pets.DecodeTags(tags)
	return p, nil
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func toNullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
