package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"roadwaysledger/models"
)

type PostgresUserRepo struct {
	DB *sql.DB
}

func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{DB: db}
}

// CreateUser hashes the password and inserts the user.
func (r *PostgresUserRepo) CreateUser(ctx context.Context, user *models.AppUser) error {
	user.Username = normalizeUsername(user.Username)
	if err := HashPassword(user); err != nil {
		return err
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO app_user (username, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, user.Username, user.Password, user.CreatedAt).Scan(&user.ID)
	return pgError(err)
}

func (r *PostgresUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.AppUser, error) {
	user := &models.AppUser{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM app_user
		WHERE username=$1
	`, normalizeUsername(username)).Scan(&user.ID, &user.Username, &user.Password, &user.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
