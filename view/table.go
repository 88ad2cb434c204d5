package view

import "roadwaysledger/models"

// Row is one display line of the ledger table.
type Row struct {
	ID          int64
	Serial      string
	LRNo        string
	BillNo      string
	BillDate    string
	TruckNo     string
	Destination string
	Weight      string
	Freight     string
	Advance     string
	Balance     string
	Diesel      string
	PumpName    string
	Margin      string
	DateAdded   string
	Editing     bool
}

type Table struct {
	Rows  []Row
	Empty bool
}

// BuildTable projects records into display rows. It does not touch its
// input, so calling it twice on the same slice yields equal tables.
func BuildTable(records []models.Bilty, dateFormat string) Table {
	return BuildTableEditing(records, dateFormat, 0)
}

// BuildTableEditing marks the row whose id equals editingID.
func BuildTableEditing(records []models.Bilty, dateFormat string, editingID int64) Table {
	if len(records) == 0 {
		return Table{Empty: true}
	}
	rows := make([]Row, 0, len(records))
	for i := range records {
		b := &records[i]
		rows = append(rows, Row{
			ID:          b.ID,
			Serial:      b.BiltySlNo,
			LRNo:        orNA(b.LRNo),
			BillNo:      b.BillNo,
			BillDate:    FormatDate(b.BillDate, dateFormat, "N/A"),
			TruckNo:     orNA(b.TruckNo),
			Destination: b.Destination,
			Weight:      FormatWeight(b.Weight),
			Freight:     FormatRupees(b.Freight),
			Advance:     FormatRupees(b.TotalAdv),
			Balance:     FormatRupees(b.Balance),
			Diesel:      FormatDiesel(b.Diesel),
			PumpName:    b.PumpName,
			Margin:      FormatRupees(b.Margin),
			DateAdded:   FormatDate(b.DateAdded, dateFormat, ""),
			Editing:     editingID != 0 && b.ID == editingID,
		})
	}
	return Table{Rows: rows}
}
