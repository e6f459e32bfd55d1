package postgres

import (
	"context"
	"database/sql"

	"petcare-api/internal/domain/visits"
)

type VisitRepo struct {
	db *sql.DB
}

func NewVisitRepo(db *sql.DB) *VisitRepo {
	return &VisitRepo{db: db}
}

func (r *VisitRepo) Create(ctx context.Context, v visits.VetVisit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vet_visits (
			id, pet_id, visit_date,
			vet_name, clinic_name, reason,
			diagnosis, treatment, medications, notes,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		v.ID,
		v.PetID,
		v.VisitDate,
		v.VetName,
		v.ClinicName,
		v.Reason,
		v.Diagnosis,
		v.Treatment,
		v.Medications,
		v.Notes,
		v.CreatedAt,
	)
	return err
}

func (r *VisitRepo) Update(ctx context.Context, v visits.VetVisit) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vet_visits
		SET
			visit_date = $2,
			vet_name = $3,
			clinic_name = $4,
			reason = $5,
			diagnosis = $6,
			treatment = $7,
			medications = $8,
			notes = $9
		WHERE id = $1
	`,
		v.ID,
		v.VisitDate,
		v.VetName,
		v.ClinicName,
		v.Reason,
		v.Diagnosis,
		v.Treatment,
		v.Medications,
		v.Notes,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return visits.ErrNotFound
	}
	return nil
}

func (r *VisitRepo) GetByID(ctx context.Context, id string) (visits.VetVisit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, pet_id, visit_date,
			vet_name, clinic_name, reason,
			diagnosis, treatment, medications, notes,
			created_at
		FROM vet_visits
		WHERE id = $1
	`, id)

	var v visits.VetVisit
	if err := row.Scan(
		&v.ID,
		&v.PetID,
		&v.VisitDate,
		&v.VetName,
		&v.ClinicName,
		&v.Reason,
		&v.Diagnosis,
		&v.Treatment,
		&v.Medications,
		&v.Notes,
		&v.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return visits.VetVisit{}, visits.ErrNotFound
		}
		return visits.VetVisit{}, err
	}
	return v, nil
}

func (r *VisitRepo) ListByPet(ctx context.Context, petID string) ([]visits.VetVisit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id, visit_date,
			vet_name, clinic_name, reason,
			diagnosis, treatment, medications, notes,
			created_at
		FROM vet_visits
		WHERE pet_id = $1
		ORDER BY visit_date DESC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]visits.VetVisit, 0)
	for rows.Next() {
		var v visits.VetVisit
		if err := rows.Scan(
			&v.ID,
			&v.PetID,
			&v.VisitDate,
			&v.VetName,
			&v.ClinicName,
			&v.Reason,
			&v.Diagnosis,
			&v.Treatment,
			&v.Medications,
			&v.Notes,
			&v.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VisitRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vet_visits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return visits.ErrNotFound
	}
	return nil
}
