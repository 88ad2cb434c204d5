package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"roadwaysledger/models"
)

type SQLiteUserRepo struct {
	DB *sql.DB
}

func NewSQLiteUserRepo(db *sql.DB) *SQLiteUserRepo {
	return &SQLiteUserRepo{DB: db}
}

func (r *SQLiteUserRepo) CreateUser(ctx context.Context, user *models.AppUser) error {
	user.Username = normalizeUsername(user.Username)
	if err := HashPassword(user); err != nil {
		return err
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO app_user (username, password_hash, created_at)
		VALUES (?, ?, ?)
	`, user.Username, user.Password, user.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return sqliteError(err)
	}
	user.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.AppUser, error) {
	user := &models.AppUser{}
	var created string
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM app_user
		WHERE username=?
	`, normalizeUsername(username)).Scan(&user.ID, &user.Username, &user.Password, &created)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	user.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return user, nil
}
