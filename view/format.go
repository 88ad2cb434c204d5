package view

import "roadwaysledger/models"

// DefaultDateFormat is day/month/year, how the ledger's operators read dates.
const DefaultDateFormat = "02/01/2006"

// FormatCurrency renders two decimals without a symbol. Missing or
// non-numeric values give "0.00".
func FormatCurrency(q models.Quantity) string {
	return q.Fixed(2)
}

// FormatCurrencyString parses s leniently before formatting.
func FormatCurrencyString(s string) string {
	return FormatCurrency(models.ParseQuantity(s))
}

func FormatWeight(q models.Quantity) string {
	return q.Fixed(3) + " MT"
}

func FormatDiesel(q models.Quantity) string {
	return q.Fixed(2) + " L"
}

func FormatRupees(q models.Quantity) string {
	return "₹ " + FormatCurrency(q)
}

// FormatDate renders d with layout, or fallback when d is empty or unreadable.
func FormatDate(d models.Date, layout, fallback string) string {
	if layout == "" {
		layout = DefaultDateFormat
	}
	return d.Format(layout, fallback)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
