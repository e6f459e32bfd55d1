// Package postgres implementa los repositorios sobre Postgres vía pgx
// (driver database/sql). Los errores de "no existe" se devuelven como
// los sentinels de cada dominio para que los services no dependan de
// este paquete.
package postgres

import (
	"context"
	"database/sql"

	"petcare-api/internal/domain/users"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.CreatedAt,
	)
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.getWhere(ctx, `id = $1`, id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	return r.getWhere(ctx, `username = $1`, username)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.getWhere(ctx, `LOWER(email) = LOWER($1)`, email)
}

func (r *UserRepo) getWhere(ctx context.Context, where string, arg any) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE `+where, arg)

	var u users.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}
