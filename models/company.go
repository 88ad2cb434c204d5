package models

import "time"

type PhoneEntry struct {
	Number string `json:"number" bson:"number"`
	Label  string `json:"label" bson:"label"`
}

// CompanyProfile is printed as the heading of ledger exports.
type CompanyProfile struct {
	ID          int64        `json:"id" bson:"_id,omitempty" db:"id"`
	CompanyName string       `json:"company_name" bson:"name" db:"name"`
	Address     string       `json:"address" bson:"address" db:"address"`
	City        string       `json:"city" bson:"city" db:"city"`
	State       string       `json:"state" bson:"state" db:"state"`
	Pincode     string       `json:"pincode" bson:"pincode" db:"pincode"`
	GSTIN       string       `json:"gstin" bson:"gstin" db:"gstin"`
	Footnote    string       `json:"footnote" bson:"footnote" db:"footnote"`
	Phones      []PhoneEntry `json:"phones" bson:"phones" db:"phones"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at" db:"created_at"`
}

// Contacts joins phone numbers as "number(label), number(label)".
func (c *CompanyProfile) Contacts() string {
	out := ""
	for i, p := range c.Phones {
		if i > 0 {
			out += ", "
		}
		out += p.Number
		if p.Label != "" {
			out += "(" + p.Label + ")"
		}
	}
	return out
}
