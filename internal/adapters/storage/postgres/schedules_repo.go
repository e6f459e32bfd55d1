package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"petcare-api/internal/domain/schedules"
)

type ScheduleRepo struct {
	db *sql.DB
}

func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

func (r *ScheduleRepo) Create(ctx context.Context, s schedules.FeedingSchedule) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO feeding_schedules (
			id, pet_id,
			food_type, amount, time, frequency, notes,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		s.ID,
		s.PetID,
		s.FoodType,
		s.Amount,
		s.Time,
		s.Frequency,
		s.Notes,
		s.CreatedAt,
	)
	return err
}

func (r *ScheduleRepo) Update(ctx context.Context, s schedules.FeedingSchedule) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE feeding_schedules
		SET
			food_type = $2,
			amount = $3,
			time = $4,
			frequency = $5,
			notes = $6
		WHERE id = $1
	`,
		s.ID,
		s.FoodType,
		s.Amount,
		s.Time,
		s.Frequency,
		s.Notes,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return schedules.ErrNotFound
	}
	return nil
}

func (r *ScheduleRepo) GetByID(ctx context.Context, id string) (schedules.FeedingSchedule, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, pet_id, food_type, amount, time, frequency, notes, created_at
		FROM feeding_schedules
		WHERE id = $1
	`, id)

	var s schedules.FeedingSchedule
	if err := row.Scan(
		&s.ID,
		&s.PetID,
		&s.FoodType,
		&s.Amount,
		&s.Time,
		&s.Frequency,
		&s.Notes,
		&s.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return schedules.FeedingSchedule{}, schedules.ErrNotFound
		}
		return schedules.FeedingSchedule{}, err
	}
	return s, nil
}

func (r *ScheduleRepo) ListByPet(ctx context.Context, petID string) ([]schedules.FeedingSchedule, error) {
	return r.list(ctx, `WHERE pet_id = $1`, petID)
}

// ListByPets arma el IN (...) a mano: pgx en modo database/sql no
// soporta binds de slices.
func (r *ScheduleRepo) ListByPets(ctx context.Context, petIDs []string) ([]schedules.FeedingSchedule, error) {
	if len(petIDs) == 0 {
		return []schedules.FeedingSchedule{}, nil
	}

	placeholders := make([]string, len(petIDs))
	args := make([]any, len(petIDs))
	for i, id := range petIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	where := `WHERE pet_id IN (` + strings.Join(placeholders, ",") + `)`
	return r.list(ctx, where, args...)
}

func (r *ScheduleRepo) list(ctx context.Context, where string, args ...any) ([]schedules.FeedingSchedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, food_type, amount, time, frequency, notes, created_at
		FROM feeding_schedules
		`+where+`
		ORDER BY time
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]schedules.FeedingSchedule, 0)
	for rows.Next() {
		var s schedules.FeedingSchedule
		if err := rows.Scan(
			&s.ID,
			&s.PetID,
			&s.FoodType,
			&s.Amount,
			&s.Time,
			&s.Frequency,
			&s.Notes,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ScheduleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM feeding_schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return schedules.ErrNotFound
	}
	return nil
}
