package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"roadwaysledger/models"
)

type SQLiteInitialRepo struct {
	DB *sql.DB
}

func NewSQLiteInitialRepo(db *sql.DB) *SQLiteInitialRepo {
	return &SQLiteInitialRepo{DB: db}
}

func (r *SQLiteInitialRepo) SaveInitial(ctx context.Context, p *models.CompanyProfile) error {
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
			SET name=?, address=?, city=?, state=?, pincode=?, gstin=?, footnote=?, phones=?
			WHERE id=?
		`, p.CompanyName, p.Address, p.City, p.State, p.Pincode, p.GSTIN, p.Footnote, string(phones), p.ID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		return nil
	}

	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO company_profile (name, address, city, state, pincode, gstin, footnote, phones, created_at)
		VALUES (?,?,?,?,?,?,?,?,?)
	`, p.CompanyName, p.Address, p.City, p.State, p.Pincode, p.GSTIN, p.Footnote, string(phones), p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteInitialRepo) GetInitial(ctx context.Context) (*models.CompanyProfile, error) {
	p := &models.CompanyProfile{}
	var phones, created string
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, address, city, state, pincode, gstin, footnote, phones, created_at
		FROM company_profile
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&p.ID, &p.CompanyName, &p.Address, &p.City, &p.State, &p.Pincode, &p.GSTIN, &p.Footnote, &phones, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(phones), &p.Phones); err != nil {
		return nil, err
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return p, nil
}
