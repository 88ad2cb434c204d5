package repository

import (
	"context"
	"errors"

	"roadwaysledger/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// BiltyRepository persists ledger entries. Lists come back newest first.
type BiltyRepository interface {
	ListBilty(ctx context.Context) ([]*models.Bilty, error)
	GetBilty(ctx context.Context, id int64) (*models.Bilty, error)
	CreateBilty(ctx context.Context, bilty *models.Bilty) error
	UpdateBilty(ctx context.Context, bilty *models.Bilty) error
	DeleteBilty(ctx context.Context, id int64) error
}

// column order shared by the SQL implementations and scanBilty
const biltyColumns = `id, bilty_sl_no, lr_no, bill_no, bill_date, truck_no, destination,
	weight, freight, diesel, total_adv, balance, pump_name, payment_officer,
	damage_if_any, margin, date_added`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBilty(row rowScanner) (*models.Bilty, error) {
	b := &models.Bilty{}
	err := row.Scan(
		&b.ID, &b.BiltySlNo, &b.LRNo, &b.BillNo, &b.BillDate, &b.TruckNo, &b.Destination,
		&b.Weight, &b.Freight, &b.Diesel, &b.TotalAdv, &b.Balance, &b.PumpName, &b.PaymentOfficer,
		&b.DamageIfAny, &b.Margin, &b.DateAdded,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// editableArgs lists every editable column except the serial number.
func editableArgs(b *models.Bilty) []any {
	return []any{
		b.LRNo, b.BillNo, b.BillDate, b.TruckNo, b.Destination,
		b.Weight, b.Freight, b.Diesel, b.TotalAdv, b.Balance,
		b.PumpName, b.PaymentOfficer, b.DamageIfAny, b.Margin,
	}
}
