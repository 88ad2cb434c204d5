package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"roadwaysledger/models"
)

type PostgresBiltyRepo struct {
	DB *sql.DB
}

func NewPostgresBiltyRepo(db *sql.DB) *PostgresBiltyRepo {
	return &PostgresBiltyRepo{DB: db}
}

func (r *PostgresBiltyRepo) ListBilty(ctx context.Context) ([]*models.Bilty, error) {
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

func (r *PostgresBiltyRepo) GetBilty(ctx context.Context, id int64) (*models.Bilty, error) {
	b, err := scanBilty(r.DB.QueryRowContext(ctx, `SELECT `+biltyColumns+` FROM bilty WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *PostgresBiltyRepo) CreateBilty(ctx context.Context, bilty *models.Bilty) error {
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
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING `+biltyColumns, args...))
	if err != nil {
		return pgError(err)
	}
	*bilty = *saved
	return nil
}

func (r *PostgresBiltyRepo) UpdateBilty(ctx context.Context, bilty *models.Bilty) error {
	args := append(editableArgs(bilty), bilty.ID)
	saved, err := scanBilty(r.DB.QueryRowContext(ctx, `
		UPDATE bilty SET
			lr_no=$1, bill_no=$2, bill_date=$3, truck_no=$4, destination=$5,
			weight=$6, freight=$7, diesel=$8, total_adv=$9, balance=$10,
			pump_name=$11, payment_officer=$12, damage_if_any=$13, margin=$14
		WHERE id=$15
		RETURNING `+biltyColumns, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return pgError(err)
	}
	*bilty = *saved
	return nil
}

func (r *PostgresBiltyRepo) DeleteBilty(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM bilty WHERE id=$1`, id)
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

// pgError maps unique violations onto ErrDuplicate.
func pgError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Detail)
	}
	return err
}
