package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateFormat(t *testing.T) {
	tests := []struct {
		in   Date
		want string
	}{
		{"2024-03-05", "05/03/2024"},
		{"2024-03-05T00:00:00.000Z", "05/03/2024"},
		{"2024-03-05 18:30:00", "05/03/2024"},
		{"", "N/A"},
		{"not a date", "N/A"},
	}
	for _, tt := range tests {
		if got := tt.in.Format("02/01/2006", "N/A"); got != tt.want {
			t.Errorf("Format(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDateOnly(t *testing.T) {
	if got := Date("2024-01-05T00:00:00Z").DateOnly(); got != "2024-01-05" {
		t.Errorf("DateOnly = %q", got)
	}
	if got := Date("2024-01-05").DateOnly(); got != "2024-01-05" {
		t.Errorf("DateOnly = %q", got)
	}
}

func TestDateJSONIsLenient(t *testing.T) {
	var rec struct {
		A, B Date
	}
	if err := json.Unmarshal([]byte(`{"A":"2024-01-05","B":12}`), &rec); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if rec.A != "2024-01-05" || rec.B != "" {
		t.Errorf("rec = %+v", rec)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	at := time.Date(2024, 2, 1, 10, 0, 0, 0, time.FixedZone("IST", 19800))
	if err := d.Scan(at); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if d != "2024-02-01T04:30:00Z" {
		t.Errorf("d = %q", d)
	}
}
