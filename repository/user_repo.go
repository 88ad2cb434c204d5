package repository

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"roadwaysledger/models"
)

// UserRepository stores ledger operators. GetUserByUsername returns nil, nil
// when the user does not exist.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.AppUser) error
	GetUserByUsername(ctx context.Context, username string) (*models.AppUser, error)
}

var ErrEmptyPassword = errors.New("password cannot be empty")

// HashPassword replaces user.Password with its bcrypt hash.
func HashPassword(user *models.AppUser) error {
	if user.Password == "" {
		return ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return nil
}

// VerifyPassword reports whether password matches the stored hash.
func VerifyPassword(user *models.AppUser, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
