package models

import (
	"encoding/json"
	"testing"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		fixed string
	}{
		{"", false, "0.00"},
		{"abc", false, "0.00"},
		{"12.5", true, "12.50"},
		{"  7 ", true, "7.00"},
		{"12abc", true, "12.00"},
		{".5", true, "0.50"},
		{"-3.25", true, "-3.25"},
		{"1e3", true, "1000.00"},
		{"1e100000000", false, "0.00"},
		{"1e-100000000", false, "0.00"},
		{"12345678901234567890123456789012345678901", false, "0.00"},
		{"1e30", true, "1000000000000000000000000000000.00"},
	}
	for _, tt := range tests {
		q := ParseQuantity(tt.in)
		if q.Valid != tt.valid || q.Fixed(2) != tt.fixed {
			t.Errorf("ParseQuantity(%q) = %v %s, want %v %s", tt.in, q.Valid, q.Fixed(2), tt.valid, tt.fixed)
		}
	}
}

func TestQuantityRawAndFormValue(t *testing.T) {
	if got := (Quantity{}).Raw(); got != "0" {
		t.Errorf("missing Raw = %q", got)
	}
	if got := (Quantity{}).FormValue(); got != "" {
		t.Errorf("missing FormValue = %q", got)
	}
	q := ParseQuantity("100.50")
	if q.Raw() != "100.5" || q.FormValue() != "100.5" {
		t.Errorf("Raw = %q FormValue = %q", q.Raw(), q.FormValue())
	}
}

func TestQuantityJSON(t *testing.T) {
	var rec struct {
		A, B, C, D Quantity
	}
	if err := json.Unmarshal([]byte(`{"A":12.5,"B":"2.500","C":null,"D":{"x":1}}`), &rec); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if rec.A.Fixed(2) != "12.50" || rec.B.Fixed(3) != "2.500" {
		t.Errorf("A = %s B = %s", rec.A.Fixed(2), rec.B.Fixed(3))
	}
	if rec.C.Valid || rec.D.Valid {
		t.Error("null and object should decode as missing")
	}

	out, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"A":"12.5","B":"2.5","C":null,"D":null}` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestQuantityScan(t *testing.T) {
	var q Quantity
	for _, src := range []any{[]byte("4.2"), "4.2", float64(4.2)} {
		if err := q.Scan(src); err != nil || q.Fixed(1) != "4.2" {
			t.Errorf("Scan(%T) = %s, %v", src, q.Fixed(1), err)
		}
	}
	if err := q.Scan(nil); err != nil || q.Valid {
		t.Errorf("Scan(nil) = %+v, %v", q, err)
	}
	if err := q.Scan(float64(1e300)); err != nil || q.Valid {
		t.Errorf("Scan(1e300) = %+v, %v", q, err)
	}
	if err := q.Scan(true); err == nil {
		t.Error("Scan(bool) should fail")
	}
}
