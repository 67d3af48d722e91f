package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct{ DB *pgxpool.Pool }

func (s *PGStore) Create(ctx context.Context, u User) (User, error) {
	u.ID = uuid.NewString()
	row := s.DB.QueryRow(ctx, `
		INSERT INTO users (id, name, email, role, password_hash)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, name, email, role, password_hash, created_at`,
		u.ID, u.Name, u.Email, u.Role, u.PasswordHash)
	out, err := scanUser(row)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return User{}, ErrEmailTaken
	}
	return out, err
}

func (s *PGStore) GetByEmail(ctx context.Context, email string) (User, error) {
	row := s.DB.QueryRow(ctx, `
		SELECT id, name, email, role, password_hash, created_at FROM users WHERE email=$1`, email)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return u, err
}

func (s *PGStore) GetByID(ctx context.Context, id string) (User, error) {
	row := s.DB.QueryRow(ctx, `
		SELECT id, name, email, role, password_hash, created_at FROM users WHERE id=$1`, id)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return u, err
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt)
	return u, err
}
