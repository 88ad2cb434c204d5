package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date is an ISO-ish date or timestamp string as the backend hands it out.
type Date string

// DateFromTime renders t as an RFC 3339 UTC timestamp.
func DateFromTime(t time.Time) Date {
	if t.IsZero() {
		return ""
	}
	return Date(t.UTC().Format(time.RFC3339))
}

// Time parses the stored string. The zone of the source is kept so that a
// date-only value never shifts to the previous day.
func (d Date) Time() (time.Time, bool) {
	s := strings.TrimSpace(string(d))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateOnly truncates to calendar-date precision ("2024-01-05T00:00:00Z" -> "2024-01-05").
func (d Date) DateOnly() string {
	s := strings.TrimSpace(string(d))
	if i := strings.IndexAny(s, "T "); i >= 0 {
		return s[:i]
	}
	return s
}

// Format renders the date with layout, or fallback when missing or unparsable.
func (d Date) Format(layout, fallback string) string {
	t, ok := d.Time()
	if !ok {
		return fallback
	}
	return t.Format(layout)
}

func (d Date) IsZero() bool { return strings.TrimSpace(string(d)) == "" }

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*d = ""
	if len(data) == 0 || data[0] != '"' {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	*d = Date(s)
	return nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = DateFromTime(v)
	case []byte:
		*d = Date(v)
	case string:
		*d = Date(v)
	default:
		return fmt.Errorf("date: cannot scan %T", src)
	}
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return string(d), nil
}
