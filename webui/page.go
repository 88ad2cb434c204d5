package webui

import (
	"roadwaysledger/ledger"
	"roadwaysledger/view"
)

// field describes one input of the dispatch form.
type field struct {
	Name     string
	Label    string
	Type     string
	Step     string
	Required bool
}

var formFields = []field{
	{Name: "bilty_sl_no", Label: "Bilty Sl No.", Type: "text", Required: true},
	{Name: "lr_no", Label: "LR No.", Type: "text"},
	{Name: "bill_no", Label: "Bill No.", Type: "text"},
	{Name: "bill_date", Label: "Bill Date", Type: "date"},
	{Name: "truck_no", Label: "Truck No.", Type: "text"},
	{Name: "destination", Label: "Destination", Type: "text"},
	{Name: "weight", Label: "Weight (MT)", Type: "number", Step: "0.001"},
	{Name: "freight", Label: "Freight (₹)", Type: "number", Step: "0.01"},
	{Name: "diesel", Label: "Diesel (L)", Type: "number", Step: "0.01"},
	{Name: "total_adv", Label: "Total Adv (₹)", Type: "number", Step: "0.01"},
	{Name: "balance", Label: "Balance (₹)", Type: "number", Step: "0.01"},
	{Name: "pump_name", Label: "Pump Name", Type: "text"},
	{Name: "payment_officer", Label: "Payment Officer", Type: "text"},
	{Name: "damage_if_any", Label: "Damage If Any", Type: "text"},
	{Name: "margin", Label: "Margin (₹)", Type: "number", Step: "0.01"},
}

type formInput struct {
	field
	Value    string
	Disabled bool
}

// pageData is everything index.html renders. It is derived from a
// snapshot and never mutated by the template.
type pageData struct {
	ledger.Snapshot
	CompanyName string
	Table       view.Table
	Inputs      []formInput
	Notice      *ledger.Notice
}

func newPageData(snap ledger.Snapshot, notice *ledger.Notice, companyName, dateFormat string) pageData {
	inputs := make([]formInput, len(formFields))
	for i, f := range formFields {
		inputs[i] = formInput{
			field:    f,
			Value:    snap.FormValues[f.Name],
			Disabled: f.Name == "bilty_sl_no" && snap.SerialLocked,
		}
	}
	return pageData{
		Snapshot:    snap,
		CompanyName: companyName,
		Table:       view.BuildTableEditing(snap.Records, dateFormat, snap.EditingID),
		Inputs:      inputs,
		Notice:      notice,
	}
}
