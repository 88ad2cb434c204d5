package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"roadwaysledger/models"
)

type SQLiteBiltyRepo struct {
	DB *sql.DB
}

func NewSQLiteBiltyRepo(db *sql.DB) *SQLiteBiltyRepo {
	return &SQLiteBiltyRepo{DB: db}
}

func (r *SQLiteBiltyRepo) ListBilty(ctx context.Context) ([]*models.Bilty, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+biltyColumns+` FROM bilty ORDER BY date_added DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Bilty{}
	for rows.Next() {
		b, err := scanBilty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *SQLiteBiltyRepo) GetBilty(ctx context.Context, id int64) (*models.Bilty, error) {
	b, err := scanBilty(r.DB.QueryRowContext(ctx, `SELECT `+biltyColumns+` FROM bilty WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *SQLiteBiltyRepo) CreateBilty(ctx context.Context, bilty *models.Bilty) error {
	if bilty.DateAdded.IsZero() {
		bilty.DateAdded = models.DateFromTime(time.Now())
	}
	args := append([]any{bilty.BiltySlNo}, editableArgs(bilty)...)
	args = append(args, bilty.DateAdded)

	saved, err := scanBilty(r.DB.QueryRowContext(ctx, `
		INSERT INTO bilty (
			bilty_sl_no, lr_no, bill_no, bill_date, truck_no, destination,
			weight, freight, diesel, total_adv, balance, pump_name, payment_officer,
			damage_if_any, margin, date_added
		)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		RETURNING `+biltyColumns, args...))
	if err != nil {
		return sqliteError(err)
	}
	*bilty = *saved
	return nil
}

func (r *SQLiteBiltyRepo) UpdateBilty(ctx context.Context, bilty *models.Bilty) error {
	args := append(editableArgs(bilty), bilty.ID)
	saved, err := scanBilty(r.DB.QueryRowContext(ctx, `
		UPDATE bilty SET
			lr_no=?, bill_no=?, bill_date=?, truck_no=?, destination=?,
			weight=?, freight=?, diesel=?, total_adv=?, balance=?,
			pump_name=?, payment_officer=?, damage_if_any=?, margin=?
		WHERE id=?
		RETURNING `+biltyColumns, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return sqliteError(err)
	}
	*bilty = *saved
	return nil
}

func (r *SQLiteBiltyRepo) DeleteBilty(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM bilty WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func sqliteError(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return errors.Join(ErrDuplicate, err)
	}
	return err
}
