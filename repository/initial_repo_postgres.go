package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"roadwaysledger/models"
)

type PostgresInitialRepo struct {
	DB *sql.DB
}

func NewPostgresInitialRepo(db *sql.DB) *PostgresInitialRepo {
	return &PostgresInitialRepo{DB: db}
}

// SaveInitial updates the profile when ID is set and inserts it otherwise.
func (r *PostgresInitialRepo) SaveInitial(ctx context.Context, p *models.CompanyProfile) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	phones, err := json.Marshal(phonesOrEmpty(p.Phones))
	if err != nil {
		return err
	}

	if p.ID > 0 {
		res, err := r.DB.ExecContext(ctx, `
			UPDATE company_profile
			SET name=$1, address=$2, city=$3, state=$4, pincode=$5, gstin=$6, footnote=$7, phones=$8
			WHERE id=$9
		`, p.CompanyName, p.Address, p.City, p.State, p.Pincode, p.GSTIN, p.Footnote, phones, p.ID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		return nil
	}

	return r.DB.QueryRowContext(ctx, `
		INSERT INTO company_profile (name, address, city, state, pincode, gstin, footnote, phones, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`, p.CompanyName, p.Address, p.City, p.State, p.Pincode, p.GSTIN, p.Footnote, phones, p.CreatedAt).Scan(&p.ID)
}

// GetInitial fetches the latest profile.
func (r *PostgresInitialRepo) GetInitial(ctx context.Context) (*models.CompanyProfile, error) {
	p := &models.CompanyProfile{}
	var phones []byte
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, address, city, state, pincode, gstin, footnote, phones, created_at
		FROM company_profile
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&p.ID, &p.CompanyName, &p.Address, &p.City, &p.State, &p.Pincode, &p.GSTIN, &p.Footnote, &phones, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(phones, &p.Phones); err != nil {
		return nil, err
	}
	return p, nil
}

func phonesOrEmpty(p []models.PhoneEntry) []models.PhoneEntry {
	if p == nil {
		return []models.PhoneEntry{}
	}
	return p
}
