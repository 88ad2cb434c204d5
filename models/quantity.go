package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// leading numeric prefix, the way a lenient float parser reads "12.5kg" as 12.5
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?`)

// Quantity is an optional decimal amount (weight, freight, diesel...).
// An invalid Quantity reads as zero everywhere it is formatted.
type Quantity struct {
	Amount decimal.Decimal
	Valid  bool
}

// NewQuantity returns a valid quantity holding d.
func NewQuantity(d decimal.Decimal) Quantity {
	return Quantity{Amount: d, Valid: true}
}

// bounds on what a ledger amount can look like; anything wider would
// format into an enormous string
const (
	maxQuantityLen      = 40
	maxQuantityExponent = 30
)

// ParseQuantity never fails: blanks, garbage and out-of-range values give an
// invalid quantity.
func ParseQuantity(s string) Quantity {
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" || len(m) > maxQuantityLen {
		return Quantity{}
	}
	sign := ""
	if m[0] == '+' || m[0] == '-' {
		sign, m = m[:1], m[1:]
	}
	if strings.HasPrefix(m, ".") {
		m = "0" + m
	}
	if sign == "-" {
		m = "-" + m
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return Quantity{}
	}
	return boundedQuantity(d)
}

func boundedQuantity(d decimal.Decimal) Quantity {
	if exp := d.Exponent(); exp > maxQuantityExponent || exp < -maxQuantityExponent {
		return Quantity{}
	}
	return NewQuantity(d)
}

// Decimal returns the value, or zero when the quantity is missing.
func (q Quantity) Decimal() decimal.Decimal {
	if !q.Valid {
		return decimal.Zero
	}
	return q.Amount
}

// Fixed formats with exactly places decimals.
func (q Quantity) Fixed(places int32) string {
	return q.Decimal().StringFixed(places)
}

// Raw formats the shortest plain number, "0" when missing.
func (q Quantity) Raw() string {
	return q.Decimal().String()
}

// FormValue is what an edit form shows: empty when missing.
func (q Quantity) FormValue() string {
	if !q.Valid {
		return ""
	}
	return q.Amount.String()
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(q.Amount.String())
}

// UnmarshalJSON accepts numbers, numeric strings and null. Anything else
// decodes to an invalid quantity instead of failing the whole record.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*q = Quantity{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*q = ParseQuantity(s)
		return nil
	}
	*q = ParseQuantity(string(data))
	return nil
}

func (q *Quantity) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*q = Quantity{}
	case []byte:
		*q = ParseQuantity(string(v))
	case string:
		*q = ParseQuantity(v)
	case float64:
		*q = boundedQuantity(decimal.NewFromFloat(v))
	case int64:
		*q = NewQuantity(decimal.NewFromInt(v))
	default:
		return fmt.Errorf("quantity: cannot scan %T", src)
	}
	return nil
}

// Value stores missing quantities as NULL and the rest as decimal text.
func (q Quantity) Value() (driver.Value, error) {
	if !q.Valid {
		return nil, nil
	}
	return q.Amount.String(), nil
}
