package postgres

import (
	"context"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/domain"
)

type usersRepo struct {
	db querier
}

const userColumns = `id, email, name, password_hash, created_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	const q = `
INSERT INTO users (email, name, password_hash)
VALUES ($1, $2, $3)
RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRow(ctx, q, u.Email, u.Name, u.PasswordHash))
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}
	return created, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.db.QueryRow(ctx, q, email))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}
