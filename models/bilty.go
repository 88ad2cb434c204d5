package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Bilty is one dispatch ledger entry.
type Bilty struct {
	ID             int64    `json:"id" db:"id"`
	BiltySlNo      string   `json:"bilty_sl_no" db:"bilty_sl_no"`
	LRNo           string   `json:"lr_no" db:"lr_no"`
	BillNo         string   `json:"bill_no" db:"bill_no"`
	BillDate       Date     `json:"bill_date" db:"bill_date"`
	TruckNo        string   `json:"truck_no" db:"truck_no"`
	Destination    string   `json:"destination" db:"destination"`
	Weight         Quantity `json:"weight" db:"weight"`
	Freight        Quantity `json:"freight" db:"freight"`
	Diesel         Quantity `json:"diesel" db:"diesel"`
	TotalAdv       Quantity `json:"total_adv" db:"total_adv"`
	Balance        Quantity `json:"balance" db:"balance"`
	PumpName       string   `json:"pump_name" db:"pump_name"`
	PaymentOfficer string   `json:"payment_officer" db:"payment_officer"`
	DamageIfAny    string   `json:"damage_if_any" db:"damage_if_any"`
	Margin         Quantity `json:"margin" db:"margin"`
	DateAdded      Date     `json:"date_added" db:"date_added"`
}

// Editable field names in form order. Everything but id and date_added.
var FieldNames = []string{
	"bilty_sl_no", "lr_no", "bill_no", "bill_date", "truck_no", "destination",
	"weight", "freight", "diesel", "total_adv", "balance", "pump_name",
	"payment_officer", "damage_if_any", "margin",
}

// BiltyDraft is the flat field-name to raw-string body of a create or update.
type BiltyDraft map[string]string

// UnmarshalJSON tolerates numbers and null alongside strings.
func (d *BiltyDraft) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(BiltyDraft, len(raw))
	for k, v := range raw {
		v = bytes.TrimSpace(v)
		switch {
		case bytes.Equal(v, []byte("null")):
			out[k] = ""
		case len(v) > 0 && v[0] == '"':
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}
			out[k] = s
		default:
			out[k] = string(v)
		}
	}
	*d = out
	return nil
}

// Draft returns the editable fields as the form would show them.
func (b *Bilty) Draft() BiltyDraft {
	return BiltyDraft{
		"bilty_sl_no":     b.BiltySlNo,
		"lr_no":           b.LRNo,
		"bill_no":         b.BillNo,
		"bill_date":       b.BillDate.DateOnly(),
		"truck_no":        b.TruckNo,
		"destination":     b.Destination,
		"weight":          b.Weight.FormValue(),
		"freight":         b.Freight.FormValue(),
		"diesel":          b.Diesel.FormValue(),
		"total_adv":       b.TotalAdv.FormValue(),
		"balance":         b.Balance.FormValue(),
		"pump_name":       b.PumpName,
		"payment_officer": b.PaymentOfficer,
		"damage_if_any":   b.DamageIfAny,
		"margin":          b.Margin.FormValue(),
	}
}

// Apply copies draft values onto b. Missing keys leave fields untouched,
// and the serial number is only written when b has not been saved yet.
func (d BiltyDraft) Apply(b *Bilty) {
	str := func(key string, dst *string) {
		if v, ok := d[key]; ok {
			*dst = v
		}
	}
	qty := func(key string, dst *Quantity) {
		if v, ok := d[key]; ok {
			*dst = ParseQuantity(v)
		}
	}
	if b.ID == 0 {
		str("bilty_sl_no", &b.BiltySlNo)
	}
	str("lr_no", &b.LRNo)
	str("bill_no", &b.BillNo)
	if v, ok := d["bill_date"]; ok {
		b.BillDate = Date(Date(v).DateOnly())
	}
	str("truck_no", &b.TruckNo)
	str("destination", &b.Destination)
	qty("weight", &b.Weight)
	qty("freight", &b.Freight)
	qty("diesel", &b.Diesel)
	qty("total_adv", &b.TotalAdv)
	qty("balance", &b.Balance)
	str("pump_name", &b.PumpName)
	str("payment_officer", &b.PaymentOfficer)
	str("damage_if_any", &b.DamageIfAny)
	qty("margin", &b.Margin)
}

// IDString is the path form of the id.
func (b *Bilty) IDString() string {
	return strconv.FormatInt(b.ID, 10)
}

func (d BiltyDraft) Clone() BiltyDraft {
	out := make(BiltyDraft, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
