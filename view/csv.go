package view

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"roadwaysledger/models"
)

const (
	CSVFilename  = "North_East_Roadways_Ledger.csv"
	XLSXFilename = "North_East_Roadways_Ledger.xlsx"
	PDFFilename  = "North_East_Roadways_Ledger.pdf"
)

// ErrNoData is returned by the exporters when there is nothing to write.
var ErrNoData = errors.New("no data to export")

// ExportHeader is the fixed column order of every export.
var ExportHeader = []string{
	"ID", "BILTY SL NO.", "LR NO.", "BILL NO", "BILL DATE", "TRUCK NO",
	"DESTINATION", "Weight (MT)", "Freight (₹)", "DIESEL (L)", "TOTAL ADV (₹)",
	"BALANCE (₹)", "PUMP NAME", "Payment Officer", "Damage If Any",
	"MARGIN (₹)", "Date Added",
}

// exportCells renders one record in header order. Money columns are raw
// numbers, weight and diesel keep their fixed decimals.
func exportCells(b *models.Bilty, dateFormat string) []string {
	return []string{
		strconv.FormatInt(b.ID, 10),
		b.BiltySlNo,
		b.LRNo,
		b.BillNo,
		FormatDate(b.BillDate, dateFormat, ""),
		b.TruckNo,
		b.Destination,
		b.Weight.Fixed(3),
		b.Freight.Raw(),
		b.Diesel.Fixed(2),
		b.TotalAdv.Raw(),
		b.Balance.Raw(),
		b.PumpName,
		b.PaymentOfficer,
		b.DamageIfAny,
		b.Margin.Raw(),
		FormatDate(b.DateAdded, dateFormat, ""),
	}
}

// WriteCSV writes every record with all cells quoted and rows separated by
// a bare newline. encoding/csv only quotes when it must, so lines are built
// by hand.
func WriteCSV(w io.Writer, records []models.Bilty, dateFormat string) error {
	if len(records) == 0 {
		return ErrNoData
	}
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, csvLine(ExportHeader))
	for i := range records {
		lines = append(lines, csvLine(exportCells(&records[i], dateFormat)))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

func csvLine(cells []string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
