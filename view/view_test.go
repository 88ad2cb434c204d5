package view

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"roadwaysledger/models"
)

func sampleRecords() []models.Bilty {
	return []models.Bilty{
		{
			ID:          1,
			BiltySlNo:   "A1",
			LRNo:        "LR-9",
			BillDate:    models.Date("2024-03-05T00:00:00Z"),
			Destination: `Guwahati "North"`,
			Weight:      models.ParseQuantity("2.5"),
			Freight:     models.ParseQuantity("100"),
			Diesel:      models.ParseQuantity("40.456"),
			TotalAdv:    models.ParseQuantity("25.5"),
			Margin:      models.ParseQuantity("-3"),
			DateAdded:   models.Date("2024-03-06T10:30:00Z"),
		},
		{ID: 2, BiltySlNo: "A2"},
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := map[string]string{
		"":      "0.00",
		"abc":   "0.00",
		"12.5":  "12.50",
		"7":     "7.00",
		"3.999": "4.00",
	}
	for in, want := range tests {
		if got := FormatCurrencyString(in); got != want {
			t.Errorf("FormatCurrencyString(%q) = %q, want %q", in, got, want)
		}
	}
	if got := FormatCurrency(models.Quantity{}); got != "0.00" {
		t.Errorf("missing quantity = %q", got)
	}
}

func TestBuildTable(t *testing.T) {
	table := BuildTable(sampleRecords(), "")
	if table.Empty || len(table.Rows) != 2 {
		t.Fatalf("table = %+v", table)
	}
	r := table.Rows[0]
	checks := map[string][2]string{
		"weight":   {r.Weight, "2.500 MT"},
		"freight":  {r.Freight, "₹ 100.00"},
		"advance":  {r.Advance, "₹ 25.50"},
		"balance":  {r.Balance, "₹ 0.00"},
		"diesel":   {r.Diesel, "40.46 L"},
		"margin":   {r.Margin, "₹ -3.00"},
		"billDate": {r.BillDate, "05/03/2024"},
		"truck":    {r.TruckNo, "N/A"},
	}
	for name, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %q, want %q", name, c[0], c[1])
		}
	}

	empty := table.Rows[1]
	if empty.Weight != "0.000 MT" || empty.BillDate != "N/A" || empty.LRNo != "N/A" || empty.Diesel != "0.00 L" {
		t.Errorf("missing values row = %+v", empty)
	}
}

func TestBuildTableIdempotent(t *testing.T) {
	records := sampleRecords()
	first := BuildTable(records, DefaultDateFormat)
	second := BuildTable(records, DefaultDateFormat)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("projection changed between renders:\n%+v\n%+v", first, second)
	}
}

func TestBuildTableEmpty(t *testing.T) {
	table := BuildTable(nil, DefaultDateFormat)
	if !table.Empty || len(table.Rows) != 0 {
		t.Fatalf("table = %+v", table)
	}
}

func TestBuildTableEditingMarksRow(t *testing.T) {
	table := BuildTableEditing(sampleRecords(), DefaultDateFormat, 2)
	if table.Rows[0].Editing || !table.Rows[1].Editing {
		t.Fatalf("editing flags = %v %v", table.Rows[0].Editing, table.Rows[1].Editing)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords(), DefaultDateFormat); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], `"ID","BILTY SL NO.","LR NO."`) || !strings.HasSuffix(lines[0], `"MARGIN (₹)","Date Added"`) {
		t.Errorf("header = %s", lines[0])
	}
	want := `"1","A1","LR-9","","05/03/2024","","Guwahati ""North""","2.500","100","40.46","25.5","0","","","","-3","06/03/2024"`
	if lines[1] != want {
		t.Errorf("row 1\n got %s\nwant %s", lines[1], want)
	}
	wantEmpty := `"2","A2","","","","","","0.000","0","0.00","0","0","","","","0",""`
	if lines[2] != wantEmpty {
		t.Errorf("row 2\n got %s\nwant %s", lines[2], wantEmpty)
	}
}

func TestWriteCSVNullFreight(t *testing.T) {
	var buf bytes.Buffer
	records := []models.Bilty{{ID: 5, BiltySlNo: "Z"}}
	if err := WriteCSV(&buf, records, DefaultDateFormat); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	row := strings.Split(strings.Split(buf.String(), "\n")[1], ",")
	if row[8] != `"0"` {
		t.Errorf("freight cell = %s, want \"0\"", row[8])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil, DefaultDateFormat); !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for empty store", buf.Len())
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleRecords(), DefaultDateFormat); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0][1] != "BILTY SL NO." || rows[1][1] != "A1" || rows[1][8] != "100" {
		t.Errorf("rows = %v", rows[:2])
	}

	styleID, err := f.GetCellStyle(sheetName, "Q1")
	if err != nil {
		t.Fatalf("GetCellStyle: %v", err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style.Font == nil || !style.Font.Bold {
		t.Errorf("last header cell not bold: %+v, %v", style, err)
	}

	if err := WriteXLSX(&bytes.Buffer{}, nil, DefaultDateFormat); !errors.Is(err, ErrNoData) {
		t.Errorf("empty err = %v", err)
	}
}
