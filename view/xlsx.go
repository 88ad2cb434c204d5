package view

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"roadwaysledger/models"
)

const sheetName = "Ledger"

// numeric columns, written as numbers so totals work in a spreadsheet
var numericColumns = map[int]bool{0: true, 7: true, 8: true, 9: true, 10: true, 11: true, 15: true}

// WriteXLSX writes the same columns as WriteCSV into one sheet.
func WriteXLSX(w io.Writer, records []models.Bilty, dateFormat string) error {
	if len(records) == 0 {
		return ErrNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(ExportHeader))
	for i, h := range ExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(ExportHeader), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i := range records {
		b := &records[i]
		cells := exportCells(b, dateFormat)
		row := make([]any, len(cells))
		for col, c := range cells {
			row[col] = c
		}
		for col := range numericColumns {
			row[col] = numericCell(b, col)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func numericCell(b *models.Bilty, col int) any {
	var q models.Quantity
	switch col {
	case 0:
		return b.ID
	case 7:
		q = b.Weight
	case 8:
		q = b.Freight
	case 9:
		q = b.Diesel
	case 10:
		q = b.TotalAdv
	case 11:
		q = b.Balance
	case 15:
		q = b.Margin
	}
	v, _ := q.Decimal().Float64()
	return v
}
